// Command ecs-gen writes the component and system declarations used by
// ecs-stress. Output is formatted and import-fixed with goimports.
//
//	go run ./cmd/ecs-gen -components 16 -systems 8 -out cmd/ecs-stress/generated.go
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/template"

	"github.com/rotisserie/eris"
	"golang.org/x/tools/imports"
)

type Config struct {
	Package    string
	Components int
	Systems    int
}

type systemDef struct {
	Name   string
	Target string
	Source string
}

type templateData struct {
	Config
	ComponentNames []string
	SystemDefs     []systemDef
}

const source = `// Code generated by ecs-gen -components {{.Components}} -systems {{.Systems}}. DO NOT EDIT.

package {{.Package}}

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/lazyengine/ecs"
)

const (
	componentCount = {{.Components}}
	systemCount    = {{.Systems}}
)
{{range .ComponentNames}}
type {{.}} struct {
	Value mgl32.Vec3
}
{{end}}
var componentTypes = []ecs.ComponentType{
{{- range .ComponentNames}}
	ecs.Type[{{.}}](),
{{- end}}
}
{{range .SystemDefs}}
// {{.Name}} integrates {{.Source}} into {{.Target}}.
type {{.Name}} struct {
	ecs.BaseSystem
}

func (s *{{.Name}}) OnUpdate(dt float64) {
	for _, e := range s.Query(ecs.Type[{{.Target}}](), ecs.Type[{{.Source}}]()) {
		dst := ecs.MustGet[{{.Target}}](e)
		src := ecs.MustGet[{{.Source}}](e)
		dst.Value = dst.Value.Add(src.Value.Mul(float32(dt)))
	}
}
{{end}}
// RegisterAllGeneratedSystems registers one instance of every generated system.
func RegisterAllGeneratedSystems(sm *ecs.SystemManager) {
{{- range .SystemDefs}}
	ecs.InstantiateSystem[{{.Name}}](sm)
{{- end}}
}

// SpawnRandomEntity creates an entity carrying n distinct random components.
func SpawnRandomEntity(em *ecs.EntityManager, rng *rand.Rand, n int) *ecs.Entity {
	n = min(n, len(componentTypes))
	types := make([]ecs.ComponentType, n)
	for i, idx := range rng.Perm(len(componentTypes))[:n] {
		types[i] = componentTypes[idx]
	}
	return em.CreateEntity(types...)
}
`

var tmpl = template.Must(template.New("generated").Parse(source))

// Generate renders the declarations for cfg. System i moves component 2i+1
// into component 2i, wrapping around the component list.
func Generate(cfg Config) ([]byte, error) {
	if cfg.Components < 2 {
		return nil, eris.Errorf("need at least 2 components, got %d", cfg.Components)
	}
	if cfg.Systems < 0 {
		return nil, eris.Errorf("negative system count %d", cfg.Systems)
	}
	if cfg.Package == "" {
		cfg.Package = "main"
	}

	data := templateData{Config: cfg}
	for i := 0; i < cfg.Components; i++ {
		data.ComponentNames = append(data.ComponentNames, fmt.Sprintf("Component%d", i))
	}
	for i := 0; i < cfg.Systems; i++ {
		data.SystemDefs = append(data.SystemDefs, systemDef{
			Name:   fmt.Sprintf("System%d", i),
			Target: data.ComponentNames[(2*i)%cfg.Components],
			Source: data.ComponentNames[(2*i+1)%cfg.Components],
		})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, eris.Wrap(err, "render template")
	}

	out, err := imports.Process("generated.go", buf.Bytes(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "format generated source")
	}
	return out, nil
}

func main() {
	var cfg Config
	flag.StringVar(&cfg.Package, "package", "main", "Package name of the generated file.")
	flag.IntVar(&cfg.Components, "components", 16, "Number of component types to generate.")
	flag.IntVar(&cfg.Systems, "systems", 8, "Number of systems to generate.")
	out := flag.String("out", "generated.go", "Output file, - for stdout.")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	src, err := Generate(cfg)
	if err != nil {
		logger.Error("generate failed", "err", err)
		os.Exit(1)
	}

	if *out == "-" {
		_, err = os.Stdout.Write(src)
	} else {
		err = os.WriteFile(*out, src, 0o644)
	}
	if err != nil {
		logger.Error("write failed", "out", *out, "err", eris.Wrap(err, "write output"))
		os.Exit(1)
	}

	logger.Info("generated", "out", *out, "components", cfg.Components, "systems", cfg.Systems)
}
