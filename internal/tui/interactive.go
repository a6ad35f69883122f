package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gravsurf/internal/config"
	"github.com/san-kum/gravsurf/internal/engine"
	"github.com/san-kum/gravsurf/internal/export"
	"github.com/san-kum/gravsurf/internal/field"
	"github.com/san-kum/gravsurf/internal/geom"
	"github.com/san-kum/gravsurf/internal/viz"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

const frameDt = 1.0 / 30.0

type paramDef struct {
	name string
	step float64
	get  func(p engine.Params) float64
	set  func(p *engine.Params, v float64)
	min  float64
	max  float64
}

var paramDefs = []paramDef{
	{"isolevel", 0.05,
		func(p engine.Params) float64 { return p.Isolevel },
		func(p *engine.Params, v float64) { p.Isolevel = v }, 0.1, 2.0},
	{"mass ratio", 0.5,
		func(p engine.Params) float64 { return p.MassRatio },
		func(p *engine.Params, v float64) { p.MassRatio = v }, 1.0, 10.0},
	{"separation", 0.25,
		func(p engine.Params) float64 { return p.Separation },
		func(p *engine.Params, v float64) { p.Separation = v }, 0.0, 6.0},
	{"omega", 5.0,
		func(p engine.Params) float64 { return p.Omega },
		func(p *engine.Params, v float64) { p.Omega = v }, 0.0, 360.0},
}

type model struct {
	eng    *engine.Engine
	cam    *viz.Camera
	cursor int
	paused bool

	simTime   float64
	history   []float64
	lastFrame time.Time
	fps       float64
	status    string

	width  int
	height int
}

// Run starts the interactive isosurface viewer.
func Run(cfg *config.Config) error {
	grid, err := field.NewGrid(cfg.GridSize, cfg.AxisMin, cfg.AxisMax)
	if err != nil {
		return err
	}
	eng, err := engine.New(grid, cfg.EngineParams())
	if err != nil {
		return err
	}
	if _, err := eng.Rebuild(); err != nil {
		return err
	}

	cam := viz.NewCamera()
	cam.FitBox(geom.Vec3{X: cfg.AxisMin, Y: cfg.AxisMin, Z: cfg.AxisMin},
		geom.Vec3{X: cfg.AxisMax, Y: cfg.AxisMax, Z: cfg.AxisMax})

	m := &model{
		eng:     eng,
		cam:     cam,
		history: make([]float64, 0, 120),
		width:   80,
		height:  24,
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(33*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *model) Init() tea.Cmd { return tick() }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if !m.paused {
			if _, err := m.eng.Step(frameDt); err != nil {
				m.status = err.Error()
				return m, tick()
			}
			m.simTime += frameDt
			m.observe()
		}
		now := time.Now()
		if !m.lastFrame.IsZero() {
			if d := now.Sub(m.lastFrame).Seconds(); d > 0 {
				m.fps = 0.9*m.fps + 0.1/d
			}
		}
		m.lastFrame = now
		return m, tick()
	}
	return m, nil
}

func (m *model) observe() {
	if mesh := m.eng.Mesh(); mesh != nil {
		m.history = append(m.history, float64(mesh.TriangleCount()))
		if len(m.history) > 120 {
			m.history = m.history[1:]
		}
	}
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(paramDefs)-1 {
			m.cursor++
		}
	case "left", "right", "-", "+", "=":
		m.adjust(msg.String())
	case "o":
		p := m.eng.Params()
		p.Orbit = !p.Orbit
		m.setParams(p)
	case "p":
		p := m.eng.Params()
		p.Pulse = !p.Pulse
		m.setParams(p)
	case " ":
		m.paused = !m.paused
	case "h":
		m.cam.RotateY(-0.1)
	case "l":
		m.cam.RotateY(0.1)
	case "u":
		m.cam.RotateX(-0.1)
	case "n":
		m.cam.RotateX(0.1)
	case "z":
		m.cam.ZoomIn()
	case "x":
		m.cam.ZoomOut()
	case "e":
		m.exportMesh()
	}
	return m, nil
}

func (m *model) adjust(key string) {
	def := paramDefs[m.cursor]
	p := m.eng.Params()
	v := def.get(p)
	switch key {
	case "left", "-":
		v -= def.step
	default:
		v += def.step
	}
	if v < def.min {
		v = def.min
	}
	if v > def.max {
		v = def.max
	}
	def.set(&p, v)
	m.setParams(p)
}

func (m *model) setParams(p engine.Params) {
	if err := m.eng.SetParams(p); err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
	if m.paused {
		if _, err := m.eng.Rebuild(); err != nil {
			m.status = err.Error()
		}
	}
}

func (m *model) exportMesh() {
	mesh := m.eng.Mesh()
	if mesh == nil || mesh.IsEmpty() {
		m.status = "nothing to export"
		return
	}
	name := fmt.Sprintf("gravsurf_%d.obj", time.Now().Unix())
	if err := export.SaveOBJ(name, mesh); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "saved " + name
}

func (m *model) View() string {
	canvasW := m.width - 28
	if canvasW < 20 {
		canvasW = 20
	}
	canvasH := m.height - 9
	if canvasH < 8 {
		canvasH = 8
	}

	canvas := viz.NewCanvas(canvasW, canvasH)
	p := m.eng.Params()
	if mesh := m.eng.Mesh(); mesh != nil {
		viz.RenderMesh(canvas, mesh, m.cam)
	}
	sources := field.BinarySources(p.MassRatio, p.Separation, p.OrbitDegrees)
	centers := make([]geom.Vec3, len(sources))
	for i, s := range sources {
		centers[i] = s.Center
	}
	viz.RenderMarkers(canvas, centers, m.cam)

	var b strings.Builder
	b.WriteString(cyan.Render("gravsurf") + dim.Render("  binary equipotential surface") + "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, canvas.String(), m.sidebar(p)))
	b.WriteString(m.footer())
	return b.String()
}

func (m *model) sidebar(p engine.Params) string {
	var b strings.Builder
	for i, def := range paramDefs {
		marker := "  "
		style := dim
		if i == m.cursor {
			marker = white.Render("> ")
			style = white
		}
		b.WriteString(fmt.Sprintf(" %s%s %s\n", marker,
			style.Render(fmt.Sprintf("%-10s", def.name)),
			yellow.Render(fmt.Sprintf("%6.2f", def.get(p)))))
	}
	b.WriteString("\n")
	b.WriteString(" " + toggleLabel("orbit", p.Orbit) + "  " + toggleLabel("pulse", p.Pulse) + "\n")
	b.WriteString(dim.Render(fmt.Sprintf("  phase %6.1f°", p.OrbitDegrees)) + "\n")

	if mesh := m.eng.Mesh(); mesh != nil {
		b.WriteString("\n")
		b.WriteString(dim.Render(fmt.Sprintf("  tris  %6d", mesh.TriangleCount())) + "\n")
		b.WriteString(dim.Render(fmt.Sprintf("  verts %6d", mesh.VertexCount())) + "\n")
	}
	if len(m.history) >= 2 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(4), asciigraph.Width(20), asciigraph.Caption("triangles"))
		b.WriteString("\n" + dimmer.Render(chart) + "\n")
	}
	return b.String()
}

func toggleLabel(name string, on bool) string {
	if on {
		return green.Render("[" + name + "]")
	}
	return dimmer.Render("[" + name + "]")
}

func (m *model) footer() string {
	state := green.Render("running")
	if m.paused {
		state = magenta.Render("paused")
	}
	help := "↑↓ select  ←→ adjust  o orbit  p pulse  space pause  hl/un rotate  zx zoom  e export  q quit"
	line := fmt.Sprintf(" %s  t=%.1fs  %.0f fps", state, m.simTime, m.fps)
	if m.status != "" {
		line += "  " + yellow.Render(m.status)
	}
	return line + "\n " + dimmer.Render(help)
}
