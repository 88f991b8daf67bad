package director

// Params is the musical parameter snapshot derived from the scene tags.
// It is recomputed wholesale on every frame and passed by value into bar
// generation, so nothing downstream ever observes a half-updated state.
type Params struct {
	RootNote  int
	Chord     ChordType
	Scale     Scale
	Density   float64
	Intensity float64
	TempoMult float64
	Character Character
}

// State owns the current categorical tags and their derived Params.
// One instance lives for the run, mutated only by the control loop.
type State struct {
	Color    Color
	Mood     Mood
	Activity Activity
	Object   Object
	Energy   Energy

	params Params
}

// NewState returns the default state: an empty gray scene at medium energy.
func NewState() *State {
	s := &State{
		Color:    ColorGray,
		Mood:     MoodNeutral,
		Activity: ActivityNone,
		Object:   ObjectNone,
		Energy:   EnergyMedium,
	}
	s.params = derive(s)
	return s
}

// Apply merges a frame into the state and recomputes the derived
// parameters. Keys absent from the frame keep their previous values.
func (s *State) Apply(f Frame) {
	if f.Color != "" {
		s.Color = Color(f.Color)
	}
	if f.Mood != "" {
		s.Mood = Mood(f.Mood)
	}
	if f.Person != "" {
		s.Activity = Activity(f.Person)
	}
	if f.Object != "" {
		s.Object = Object(f.Object)
	}
	if f.Energy != "" {
		s.Energy = Energy(f.Energy)
	}
	s.params = derive(s)
}

// Params returns the current derived parameter snapshot.
func (s *State) Params() Params {
	return s.params
}

func derive(s *State) Params {
	var p Params

	p.RootNote = defaultRoot
	if root, ok := colorToRoot[s.Color]; ok {
		p.RootNote = root
	}

	h := defaultHarmony
	if m, ok := moodToHarmony[s.Mood]; ok {
		h = m
	}
	p.Chord = h.chord
	p.Scale = h.scale

	p.Density = defaultDensity
	if d, ok := activityToDensity[s.Activity]; ok {
		p.Density = d
	}

	p.Character = CharNeutral
	if c, ok := objectToCharacter[s.Object]; ok {
		p.Character = c
	}

	dyn := defaultDynamics
	if d, ok := energyToDynamics[s.Energy]; ok {
		dyn = d
	}
	p.TempoMult = dyn.tempoMult
	p.Intensity = h.intensity * dyn.intensityScale
	if p.Intensity > 1.0 {
		p.Intensity = 1.0
	}

	return p
}
