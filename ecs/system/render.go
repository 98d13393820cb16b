package system

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/enginedemos/ecs"
	"github.com/milk9111/enginedemos/ecs/component"
	"github.com/milk9111/enginedemos/ecs/render"
)

// RenderSystem draws every mesh through the single camera, then the text
// overlays on top of the post-processed image.
type RenderSystem struct {
	renderer *render.Renderer
	// Physics, when set, has its collider outlines drawn over the scene.
	Physics *PhysicsSystem

	missingTextures map[string]bool
	cameraErr       string
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{missingTextures: make(map[string]bool)}
}

// Update does nothing; rendering happens in Draw.
func (r *RenderSystem) Update(w *ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	if r.renderer == nil {
		r.renderer = render.NewRenderer()
	}

	camEntity, err := ecs.Single(w, component.CameraComponent.Kind(), component.TransformComponent.Kind())
	if err != nil {
		if msg := err.Error(); msg != r.cameraErr {
			log.Printf("render: %v", err)
			r.cameraErr = msg
		}
		r.drawTexts(w, screen)
		return
	}
	r.cameraErr = ""

	cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())
	camTransform, _ := ecs.Get(w, camEntity, component.TransformComponent.Kind())
	bloom, _ := ecs.Get(w, camEntity, component.BloomSettingsComponent.Kind())

	b := screen.Bounds()
	frame := render.Frame{
		View:   render.NewView(cam, camTransform.Translation, b.Dx(), b.Dy()),
		Camera: cam,
		Bloom:  bloom,
	}

	ecs.ForEach2(w, component.PointLightComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, l *component.PointLight, t *component.Transform) {
		frame.Lights = append(frame.Lights, render.Light{
			Position:  t.Translation,
			Intensity: l.Intensity,
			Range:     l.Range,
			Color:     render.RGBOf(l.Color),
			Shadows:   l.ShadowsEnabled,
		})
	})

	var items []render.Item
	ecs.ForEach2(w, component.MeshComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, m *component.Mesh, t *component.Transform) {
		r.resolveTexture(m)
		tris := render.Tessellate(m, t)
		if len(tris) == 0 {
			return
		}
		closed := m.Shape == component.MeshCuboid
		if closed {
			min, max := render.Bounds(tris)
			frame.Occluders = append(frame.Occluders, render.Box{Min: min, Max: max})
		}
		items = append(items, render.Item{
			Tris:    tris,
			Color:   render.RGBOf(m.Color),
			Texture: m.Texture,
			Unlit:   m.Unlit,
			Closed:  closed,
		})
	})

	r.renderer.Render(screen, frame, items)

	if r.Physics != nil {
		DrawPhysicsDebug(r.Physics, frame.View, screen)
	}
	r.drawTexts(w, screen)
}

func (r *RenderSystem) resolveTexture(m *component.Mesh) {
	if m.Texture != nil || m.TextureKey == "" || r.missingTextures[m.TextureKey] {
		return
	}
	img, err := render.LoadImage(m.TextureKey)
	if err != nil {
		log.Printf("render: texture %q: %v", m.TextureKey, err)
		r.missingTextures[m.TextureKey] = true
		return
	}
	m.Texture = img
}

func (r *RenderSystem) drawTexts(w *ecs.World, screen *ebiten.Image) {
	ecs.ForEach(w, component.TextComponent.Kind(), func(e ecs.Entity, t *component.Text) {
		render.DrawText(screen, t)
	})
}
