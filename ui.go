package main

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/inkyblackness/imgui-go/v2"

	"github.com/ob6160/Bloch/decoherence"
)

// singleStep is the time advanced by the Step button.
const singleStep = 1.0 / 60

func (s *State) setParameter(name decoherence.Parameter, value float32) {
	if err := s.Simulator.SetParameter(name, float64(value)); err != nil {
		slog.Error("set parameter", "name", name, "error", err)
		return
	}
	slog.Debug("parameter changed", "name", name, "value", value)
}

func (s *State) renderUI() {
	treeNodeFlags := imgui.TreeNodeFlagsDefaultOpen
	if imgui.BeginV("Bloch Sphere", &s.PanelOpen, imgui.WindowFlagsAlwaysAutoResize) {
		st := s.Simulator.State()
		if imgui.TreeNodeV("State", treeNodeFlags) {
			imgui.Text(fmt.Sprintf("Coherence  %.4f", st.Coherence))
			imgui.Text(fmt.Sprintf("Theta      %.4f rad", st.Theta))
			imgui.Text(fmt.Sprintf("Phi        %.4f rad", math.Mod(st.Phi, 2*math.Pi)))
			imgui.Text(fmt.Sprintf("Time       %.2f s", st.Time))
			if s.FrameTime > 0 {
				imgui.Text(fmt.Sprintf("FPS        %.0f", 1/s.FrameTime))
			}
			imgui.TreePop()
		}
		imgui.Separator()
		if imgui.TreeNodeV("Parameters", treeNodeFlags) {
			imgui.PushItemWidth(160)
			{
				if imgui.SliderFloat("Kappa", &s.Kappa, 0.0, 1.0) {
					s.setParameter(decoherence.ParamKappa, s.Kappa)
				}
				if imgui.SliderFloat("Gamma", &s.Gamma, 0.0, 1.0) {
					s.setParameter(decoherence.ParamGamma, s.Gamma)
				}
				maxCoherence := float32(s.Simulator.Model().MaxCoherence)
				if imgui.SliderFloat("Initial Coherence", &s.InitialCoherence, 0.0, maxCoherence) {
					s.setParameter(decoherence.ParamInitialCoherence, s.InitialCoherence)
				}
				imgui.PopItemWidth()
			}
			imgui.TreePop()
		}
		imgui.Separator()
		if imgui.TreeNodeV("Simulation", treeNodeFlags) {
			runningLabel := "Resume"
			if s.Simulator.IsRunning() {
				runningLabel = "Pause"
			}
			if imgui.Button(runningLabel) {
				s.Simulator.Toggle()
			}
			imgui.SameLine()
			if imgui.Button("Step") {
				s.Simulator.Advance(singleStep)
			}
			imgui.SameLine()
			if imgui.Button("Reset") {
				s.Simulator.Reset()
				slog.Debug("simulation reset", "coherence", s.Simulator.State().Coherence)
			}
			imgui.TreePop()
		}
		imgui.Separator()
		if imgui.TreeNodeV("View", treeNodeFlags) {
			imgui.Checkbox("Wireframe", &s.ShowWireframe)
			imgui.SameLine()
			imgui.Checkbox("Axes", &s.ShowAxes)
			imgui.Checkbox("State Vector", &s.ShowMarker)
			if s.Particles != nil {
				imgui.SameLine()
				imgui.Checkbox("Particles", &s.ShowParticles)
			}
			imgui.PushItemWidth(160)
			imgui.SliderFloat("FOV", &s.FOV, 20.0, 120.0)
			imgui.PopItemWidth()
			imgui.TreePop()
		}
	}
	imgui.End()
}
