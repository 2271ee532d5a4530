package compositor

import (
	"fmt"
	"image"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// flatShaderSource is the WGSL for the compositor's flat-color pipeline.
// Positions are in NDC so a unit quad fills whatever viewport is bound.
const flatShaderSource = `
struct VertexOut {
    @builtin(position) position: vec4<f32>,
    @location(0) color: vec4<f32>,
};

@vertex
fn vs_main(@location(0) pos: vec2<f32>, @location(1) color: vec4<f32>) -> VertexOut {
    var out: VertexOut;
    out.position = vec4<f32>(pos, 0.0, 1.0);
    out.color = color;
    return out;
}

@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4<f32> {
    return in.color;
}
`

// overlayShaderSource is the WGSL for the overlay blit: a fullscreen
// triangle sampling the CPU-composed overlay buffer, alpha-blended over the
// frame.
const overlayShaderSource = `
struct VertexOut {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
};

@vertex
fn vs_main(@builtin(vertex_index) index: u32) -> VertexOut {
    var out: VertexOut;
    let uv = vec2<f32>(f32((index << 1u) & 2u), f32(index & 2u));
    out.uv = uv;
    out.position = vec4<f32>(uv.x * 2.0 - 1.0, 1.0 - uv.y * 2.0, 0.0, 1.0);
    return out;
}

@group(0) @binding(0) var overlay_texture: texture_2d<f32>;
@group(0) @binding(1) var overlay_sampler: sampler;

@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4<f32> {
    return textureSample(overlay_texture, overlay_sampler, in.uv);
}
`

// flatVertex is the vertex layout of the flat-color pipeline: NDC position
// plus per-vertex color.
type flatVertex struct {
	pos   [2]float32
	color [4]float32
}

type wgpuBackendImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor
	presentMode          wgpu.PresentMode

	flatPipeline *wgpu.RenderPipeline

	// Overlay blit state: the CPU-composed overlay buffer is uploaded into
	// overlayTexture and drawn over the frame as a fullscreen triangle.
	overlayPipeline    *wgpu.RenderPipeline
	overlayBindLayout  *wgpu.BindGroupLayout
	overlayTexture     *wgpu.Texture
	overlayTextureView *wgpu.TextureView
	overlaySampler     *wgpu.Sampler
	overlayBindGroup   *wgpu.BindGroup

	surfaceWidth  int
	surfaceHeight int

	// Current viewport rectangle, used to convert pixel line widths to NDC.
	viewX, viewY, viewW, viewH int

	// Frame state for batching all compositor draws into one render pass.
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView

	// Per-frame scratch buffers, released after submission.
	frameBuffers []*wgpu.Buffer
}

var _ Backend = &wgpuBackendImpl{}

// NewWgpuBackend creates the webgpu compositor backend for the given surface
// descriptor. Initialization failures panic: without an adapter and device
// the viewer cannot run at all.
//
// Parameters:
//   - surfaceDescriptor: the platform surface to render into
//   - forceFallbackAdapter: request a software adapter, for CI environments
//   - options: functional options to configure the backend
//
// Returns:
//   - Backend: the newly created backend
func NewWgpuBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, options ...WgpuBackendOption) Backend {
	runtime.LockOSThread()
	b := &wgpuBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
	}
	for _, option := range options {
		option(b)
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		panic(err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Viewer Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		panic(err)
	}
	b.device = d
	b.queue = d.GetQueue()

	return b
}

func (b *wgpuBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
	b.surfaceWidth = width
	b.surfaceHeight = height

	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	b.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    nil, // set per-frame to the swapchain view
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: wgpu.StoreOpStore,
				ClearValue: wgpu.Color{
					R: 0.1, G: 0.1, B: 0.1, A: 1.0,
				},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}

	if b.flatPipeline == nil {
		b.flatPipeline = b.createFlatPipeline()
	}
	if b.overlayPipeline == nil {
		b.overlayPipeline = b.createOverlayPipeline()
	}
	b.configureOverlayTexture(width, height)
}

// configureOverlayTexture (re)creates the overlay texture and its bind group
// for the current surface size. Caller must hold the mutex.
func (b *wgpuBackendImpl) configureOverlayTexture(width, height int) {
	if b.overlayTextureView != nil {
		b.overlayTextureView.Release()
	}
	if b.overlayTexture != nil {
		b.overlayTexture.Release()
	}

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Overlay Texture",
		Usage: wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
	})
	if err != nil {
		panic(err)
	}
	b.overlayTexture = tex

	b.overlayTextureView, err = tex.CreateView(nil)
	if err != nil {
		panic(err)
	}

	if b.overlaySampler == nil {
		b.overlaySampler, err = b.device.CreateSampler(&wgpu.SamplerDescriptor{
			Label:         "Overlay Sampler",
			AddressModeU:  wgpu.AddressModeClampToEdge,
			AddressModeV:  wgpu.AddressModeClampToEdge,
			AddressModeW:  wgpu.AddressModeClampToEdge,
			MagFilter:     wgpu.FilterModeNearest,
			MinFilter:     wgpu.FilterModeNearest,
			MipmapFilter:  wgpu.MipmapFilterModeNearest,
			LodMaxClamp:   32.0,
			MaxAnisotropy: 1,
		})
		if err != nil {
			panic(err)
		}
	}

	b.overlayBindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Overlay Bind Group",
		Layout: b.overlayBindLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: b.overlayTextureView},
			{Binding: 1, Sampler: b.overlaySampler},
		},
	})
	if err != nil {
		panic(err)
	}
}

// createFlatPipeline builds the alpha-blended flat-color pipeline used for
// viewport tints and border contours. Depth testing is disabled so the
// primitives composite over scene content. Caller must hold the mutex.
func (b *wgpuBackendImpl) createFlatPipeline() *wgpu.RenderPipeline {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Compositor Flat Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: flatShaderSource,
		},
	})
	if err != nil {
		panic(err)
	}

	layout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label: "Compositor Flat Pipeline Layout",
	})
	if err != nil {
		panic(err)
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Compositor Flat Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: 6 * 4,
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 2 * 4, ShaderLocation: 1},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format: *b.surfaceFormat,
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorSrcAlpha,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
							Operation: wgpu.BlendOperationAdd,
						},
						Alpha: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
							Operation: wgpu.BlendOperationAdd,
						},
					},
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: false,
			DepthCompare:      wgpu.CompareFunctionAlways,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		panic(err)
	}
	return created
}

// createOverlayPipeline builds the alpha-blended fullscreen-triangle pipeline
// sampling the overlay texture. Depth testing is disabled so the overlay
// composites over all viewport content. Caller must hold the mutex.
func (b *wgpuBackendImpl) createOverlayPipeline() *wgpu.RenderPipeline {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Compositor Overlay Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: overlayShaderSource,
		},
	})
	if err != nil {
		panic(err)
	}

	b.overlayBindLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Overlay Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		panic(err)
	}

	layout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Compositor Overlay Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.overlayBindLayout},
	})
	if err != nil {
		panic(err)
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Compositor Overlay Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format: *b.surfaceFormat,
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorSrcAlpha,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
							Operation: wgpu.BlendOperationAdd,
						},
						Alpha: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
							Operation: wgpu.BlendOperationAdd,
						},
					},
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: false,
			DepthCompare:      wgpu.CompareFunctionAlways,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		panic(err)
	}
	return created
}

func (b *wgpuBackendImpl) SurfaceSize() (width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surfaceWidth, b.surfaceHeight
}

func (b *wgpuBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface != nil {
		return fmt.Errorf("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	b.renderPassDescriptor.ColorAttachments[0].View = view
	pass := encoder.BeginRenderPass(b.renderPassDescriptor)

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view
	b.viewX, b.viewY = 0, 0
	b.viewW, b.viewH = b.surfaceWidth, b.surfaceHeight

	return nil
}

func (b *wgpuBackendImpl) SetViewport(x, y, width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return
	}
	b.framePass.SetViewport(float32(x), float32(y), float32(width), float32(height), 0, 1)
	b.viewX, b.viewY, b.viewW, b.viewH = x, y, width, height
}

func (b *wgpuBackendImpl) TintViewport(c common.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Two triangles spanning the full NDC range fill the bound viewport.
	b.drawFlat(quadVertices(-1, -1, 1, 1, c))
}

func (b *wgpuBackendImpl) DrawBorder(lineWidth float32, c common.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.viewW <= 0 || b.viewH <= 0 {
		return
	}

	// The stroke sits entirely inside the viewport edge, so its extent in
	// NDC is the full line width mapped through the viewport size.
	w := 2 * lineWidth / float32(b.viewW)
	h := 2 * lineWidth / float32(b.viewH)

	vertices := make([]flatVertex, 0, 24)
	vertices = append(vertices, quadVertices(-1, -1, 1, -1+h, c)...) // top
	vertices = append(vertices, quadVertices(-1, 1-h, 1, 1, c)...)   // bottom
	vertices = append(vertices, quadVertices(-1, -1, -1+w, 1, c)...) // left
	vertices = append(vertices, quadVertices(1-w, -1, 1, 1, c)...)   // right
	b.drawFlat(vertices)
}

func (b *wgpuBackendImpl) DrawOverlay(img *image.RGBA) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil || img == nil {
		return
	}
	bounds := img.Bounds()
	if bounds.Dx() != b.surfaceWidth || bounds.Dy() != b.surfaceHeight {
		// Resize in flight: the surface reallocates its buffer before the
		// backend reconfigures. Skip until the sizes agree again.
		return
	}

	// The upload lands on the queue timeline before the frame's command
	// buffer is submitted in EndFrame.
	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  b.overlayTexture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		img.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(img.Stride),
			RowsPerImage: uint32(bounds.Dy()),
		},
		&wgpu.Extent3D{
			Width:              uint32(bounds.Dx()),
			Height:             uint32(bounds.Dy()),
			DepthOrArrayLayers: 1,
		},
	)

	b.framePass.SetPipeline(b.overlayPipeline)
	b.framePass.SetBindGroup(0, b.overlayBindGroup, nil)
	b.framePass.Draw(3, 1, 0, 0)
}

func (b *wgpuBackendImpl) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return
	}
	b.framePass.End()

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err == nil {
		b.queue.Submit(commandBuffer)
		commandBuffer.Release()
	}
	b.frameEncoder.Release()
	b.frameEncoder = nil
	b.framePass = nil

	for _, buf := range b.frameBuffers {
		buf.Release()
	}
	b.frameBuffers = nil
}

func (b *wgpuBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}

	b.surface.Present()

	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	b.frameSurface.Release()
	b.frameSurface = nil
}

// RenderPass exposes the frame's render pass so scene renderers can encode
// their draws into the compositor's pass between BeginFrame and EndFrame.
//
// Returns:
//   - *wgpu.RenderPassEncoder: the current pass, nil outside a frame
func (b *wgpuBackendImpl) RenderPass() *wgpu.RenderPassEncoder {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.framePass
}

// Device returns the backend's GPU device, used by scene renderers to create
// their pipelines and buffers.
//
// Returns:
//   - *wgpu.Device: the GPU device
func (b *wgpuBackendImpl) Device() *wgpu.Device {
	return b.device
}

// Queue returns the backend's GPU queue, used by scene renderers for uploads.
//
// Returns:
//   - *wgpu.Queue: the GPU queue
func (b *wgpuBackendImpl) Queue() *wgpu.Queue {
	return b.queue
}

// drawFlat uploads the vertices to a per-frame scratch buffer and encodes a
// draw with the flat-color pipeline. Caller must hold the mutex.
func (b *wgpuBackendImpl) drawFlat(vertices []flatVertex) {
	if b.framePass == nil || len(vertices) == 0 {
		return
	}

	data := common.SliceToBytes(vertices)
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Compositor Flat Vertices",
		Size:  uint64(len(data)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return
	}
	b.queue.WriteBuffer(buf, 0, data)
	b.frameBuffers = append(b.frameBuffers, buf)

	b.framePass.SetPipeline(b.flatPipeline)
	b.framePass.SetVertexBuffer(0, buf, 0, wgpu.WholeSize)
	b.framePass.Draw(uint32(len(vertices)), 1, 0, 0)
}

// quadVertices returns the two triangles of an axis-aligned quad in NDC.
func quadVertices(x0, y0, x1, y1 float32, c common.Color) []flatVertex {
	col := [4]float32{c.R, c.G, c.B, c.A}
	return []flatVertex{
		{pos: [2]float32{x0, y0}, color: col},
		{pos: [2]float32{x1, y0}, color: col},
		{pos: [2]float32{x1, y1}, color: col},
		{pos: [2]float32{x0, y0}, color: col},
		{pos: [2]float32{x1, y1}, color: col},
		{pos: [2]float32{x0, y1}, color: col},
	}
}
