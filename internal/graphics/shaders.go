package graphics

const chunkVertexShader = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec4 aColor;
layout (location = 3) in vec2 aUV;

uniform mat4 view;
uniform mat4 proj;

out vec3 vNormal;
out vec4 vColor;
out vec2 vUV;

void main() {
    vNormal = aNormal;
    vColor = aColor;
    vUV = aUV;
    gl_Position = proj * view * vec4(aPos, 1.0);
}
`

const chunkFragmentShader = `#version 410 core
in vec3 vNormal;
in vec4 vColor;
in vec2 vUV;

uniform vec3 lightDir;
uniform float ambient;

out vec4 FragColor;

void main() {
    float diffuse = max(dot(normalize(vNormal), normalize(-lightDir)), 0.0);
    // darken the face border so neighboring blocks stay distinguishable
    vec2 edge = min(vUV, 1.0 - vUV);
    float border = smoothstep(0.0, 0.04, min(edge.x, edge.y)) * 0.15 + 0.85;
    FragColor = vec4(vColor.rgb * (ambient + (1.0 - ambient) * diffuse) * border, vColor.a);
}
`
