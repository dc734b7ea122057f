package physics

import "fmt"

// Params is the provider-specific configuration sub-table, e.g. the N×N
// matrix for diffusion.Matrix, read out of the config's
// [configuration.diffusion_params]/[configuration.reaction_params]
// tables.
type Params map[string]interface{}

type diffusionCtor func(N int, p Params) (Diffusion, error)
type sourceCtor func(N int, p Params) (Source, error)

var (
	diffusionRegistry = map[string]diffusionCtor{}
	sourceRegistry    = map[string]sourceCtor{}
)

// RegisterDiffusion adds a named diffusion provider constructor to the
// registry. Intended to be called from provider package init()
// functions, the Go analogue of the original's
// REGISTER_PHYSICS_HEADER macro-based self-registration.
func RegisterDiffusion(name string, ctor diffusionCtor) {
	if _, exists := diffusionRegistry[name]; exists {
		panic(fmt.Sprintf("physics: diffusion provider %q already registered", name))
	}
	diffusionRegistry[name] = ctor
}

// RegisterSource adds a named source provider constructor to the
// registry.
func RegisterSource(name string, ctor sourceCtor) {
	if _, exists := sourceRegistry[name]; exists {
		panic(fmt.Sprintf("physics: source provider %q already registered", name))
	}
	sourceRegistry[name] = ctor
}

// NewDiffusion looks up Diffusion_case and constructs the provider.
func NewDiffusion(name string, N int, p Params) (Diffusion, error) {
	ctor, ok := diffusionRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown Diffusion_case %q", name)
	}
	return ctor(N, p)
}

// NewSource looks up Reaction_case and constructs the provider.
func NewSource(name string, N int, p Params) (Source, error) {
	ctor, ok := sourceRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown Reaction_case %q", name)
	}
	return ctor(N, p)
}
