package system

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/enginedemos/ecs"
	"github.com/milk9111/enginedemos/ecs/component"
	"github.com/milk9111/enginedemos/prefabs"
	"gopkg.in/yaml.v3"
)

const bloomOffText = "Bloom: Off (Toggle: Space)"

// bloomKnob binds an increase/decrease key pair to one continuous field.
type bloomKnob struct {
	up, down ebiten.Key
	// rate is the change per second while a key is held
	rate  float64
	field func(*component.BloomSettings) *float64
}

var bloomKnobs = []bloomKnob{
	{ebiten.KeyQ, ebiten.KeyA, 0.1, func(b *component.BloomSettings) *float64 { return &b.Intensity }},
	{ebiten.KeyW, ebiten.KeyS, 0.1, func(b *component.BloomSettings) *float64 { return &b.LowFrequencyBoost }},
	{ebiten.KeyE, ebiten.KeyD, 0.1, func(b *component.BloomSettings) *float64 { return &b.LowFrequencyBoostCurvature }},
	{ebiten.KeyR, ebiten.KeyF, 0.1, func(b *component.BloomSettings) *float64 { return &b.HighPassFrequency }},
	{ebiten.KeyY, ebiten.KeyH, 1, func(b *component.BloomSettings) *float64 { return &b.Prefilter.Threshold }},
	{ebiten.KeyU, ebiten.KeyJ, 0.1, func(b *component.BloomSettings) *float64 { return &b.Prefilter.ThresholdSoftness }},
}

// AdjustBloom applies one tick of held keys to b and clamps the result.
func AdjustBloom(b *component.BloomSettings, kb *component.Keyboard, dt float64) {
	if b == nil {
		return
	}
	for _, knob := range bloomKnobs {
		v := knob.field(b)
		if kb.Pressed(knob.down) {
			*v -= dt * knob.rate
		}
		if kb.Pressed(knob.up) {
			*v += dt * knob.rate
		}
	}
	if kb.Pressed(ebiten.KeyG) {
		b.CompositeMode = component.BloomCompositeAdditive
	}
	if kb.Pressed(ebiten.KeyT) {
		b.CompositeMode = component.BloomCompositeEnergyConserving
	}
	b.Clamp()
}

// BloomSummary renders the on-screen description of b. A nil b means bloom
// is switched off.
func BloomSummary(b *component.BloomSettings) string {
	if b == nil {
		return bloomOffText
	}
	var sb strings.Builder
	sb.WriteString("BloomSettings (Toggle: Space)\n")
	fmt.Fprintf(&sb, "(Q/A) Intensity: %s\n", formatKnob(b.Intensity))
	fmt.Fprintf(&sb, "(W/S) Low-frequency boost: %s\n", formatKnob(b.LowFrequencyBoost))
	fmt.Fprintf(&sb, "(E/D) Low-frequency boost curvature: %s\n", formatKnob(b.LowFrequencyBoostCurvature))
	fmt.Fprintf(&sb, "(R/F) High-pass frequency: %s\n", formatKnob(b.HighPassFrequency))
	fmt.Fprintf(&sb, "(T/G) Mode: %s\n", b.CompositeMode)
	fmt.Fprintf(&sb, "(Y/H) Threshold: %s\n", formatKnob(b.Prefilter.Threshold))
	fmt.Fprintf(&sb, "(U/J) Threshold softness: %s\n", formatKnob(b.Prefilter.ThresholdSoftness))
	return sb.String()
}

func formatKnob(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 32)
}

// MarshalBloom encodes b in the prefab format of the bloom component.
func MarshalBloom(b *component.BloomSettings) ([]byte, error) {
	mode := "energy_conserving"
	if b.CompositeMode == component.BloomCompositeAdditive {
		mode = "additive"
	}
	spec := prefabs.BloomComponentSpec{
		Intensity:                  &b.Intensity,
		LowFrequencyBoost:          &b.LowFrequencyBoost,
		LowFrequencyBoostCurvature: &b.LowFrequencyBoostCurvature,
		HighPassFrequency:          &b.HighPassFrequency,
		CompositeMode:              mode,
		Threshold:                  &b.Prefilter.Threshold,
		ThresholdSoftness:          &b.Prefilter.ThresholdSoftness,
	}
	out, err := yaml.Marshal(map[string]any{"bloom": spec})
	if err != nil {
		return nil, fmt.Errorf("bloom: marshal settings: %w", err)
	}
	return out, nil
}

// BloomSettingsSystem edits the bloom settings of the single camera from
// the keyboard and keeps the HUD text in sync with them.
type BloomSettingsSystem struct {
	// Export receives the settings as YAML when C is pressed. Nil disables
	// exporting.
	Export func([]byte) error
}

func NewBloomSettingsSystem(export func([]byte) error) *BloomSettingsSystem {
	return &BloomSettingsSystem{Export: export}
}

func (s *BloomSettingsSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	kb := ecs.Resource(w, component.KeyboardComponent.Kind())
	t := ecs.Resource(w, component.TimeComponent.Kind())
	camera, err := ecs.Single(w, component.CameraComponent.Kind())
	if err != nil {
		panic("bloom settings system: find camera: " + err.Error())
	}
	hud, err := ecs.Single(w, component.TextComponent.Kind())
	if err != nil {
		panic("bloom settings system: find text: " + err.Error())
	}

	kind := component.BloomSettingsComponent.Kind()
	if kb.JustPressed(ebiten.KeySpace) {
		if ecs.Has(w, camera, kind) {
			ecs.Remove(w, camera, kind)
		} else {
			defaults := component.DefaultBloomSettings()
			if err := ecs.Add(w, camera, kind, &defaults); err != nil {
				panic("bloom settings system: enable bloom: " + err.Error())
			}
		}
	}

	bloom, _ := ecs.Get(w, camera, kind)
	AdjustBloom(bloom, kb, t.Delta)

	if bloom != nil && kb.JustPressed(ebiten.KeyC) && s.Export != nil {
		if data, err := MarshalBloom(bloom); err != nil {
			log.Printf("bloom: export: %v", err)
		} else if err := s.Export(data); err != nil {
			log.Printf("bloom: export: %v", err)
		} else {
			log.Printf("bloom: exported settings")
		}
	}

	text, _ := ecs.Get(w, hud, component.TextComponent.Kind())
	text.Value = BloomSummary(bloom)
}
