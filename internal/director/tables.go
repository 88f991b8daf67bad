package director

// Closed vocabularies for the scene tags and the musical values derived
// from them. Every parse falls back to a named default rather than failing,
// so the mapping stays total over arbitrary director output.

type Color string

const (
	ColorRed    Color = "red"
	ColorOrange Color = "orange"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorPurple Color = "purple"
	ColorBrown  Color = "brown"
	ColorGray   Color = "gray"
	ColorBlack  Color = "black"
	ColorWhite  Color = "white"
)

type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodSad     Mood = "sad"
	MoodCalm    Mood = "calm"
	MoodExcited Mood = "excited"
	MoodSerious Mood = "serious"
	MoodNeutral Mood = "neutral"
)

type Activity string

const (
	ActivitySitting  Activity = "sitting"
	ActivityStanding Activity = "standing"
	ActivityWalking  Activity = "walking"
	ActivityTalking  Activity = "talking"
	ActivityWaving   Activity = "waving"
	ActivityNone     Activity = "none"
)

type Object string

const (
	ObjectComputer Object = "computer"
	ObjectPhone    Object = "phone"
	ObjectCup      Object = "cup"
	ObjectChair    Object = "chair"
	ObjectBook     Object = "book"
	ObjectPlant    Object = "plant"
	ObjectWindow   Object = "window"
	ObjectNone     Object = "none"
)

type Energy string

const (
	EnergyLow    Energy = "low"
	EnergyMedium Energy = "medium"
	EnergyHigh   Energy = "high"
)

type ChordType string

const (
	ChordMaj7  ChordType = "maj7"
	ChordMin7  ChordType = "min7"
	ChordDom7  ChordType = "dom7"
	ChordDim7  ChordType = "dim7"
	ChordMin9  ChordType = "min9"
	ChordMaj9  ChordType = "maj9"
	ChordDom9  ChordType = "dom9"
	ChordMin11 ChordType = "min11"
	ChordDom13 ChordType = "dom13"
)

type Scale string

const (
	ScaleMinor           Scale = "minor"
	ScaleMajor           Scale = "major"
	ScaleDorian          Scale = "dorian"
	ScaleMixolydian      Scale = "mixolydian"
	ScaleBlues           Scale = "blues"
	ScalePentatonicMinor Scale = "pentatonic_minor"
)

// Character shapes how the lead articulates notes.
type Character string

const (
	CharStaccato Character = "staccato"
	CharGlitchy  Character = "glitchy"
	CharWarm     Character = "warm"
	CharSteady   Character = "steady"
	CharFlowing  Character = "flowing"
	CharOrganic  Character = "organic"
	CharAiry     Character = "airy"
	CharNeutral  Character = "neutral"
)

// defaultRoot is F; unknown colors land here.
const defaultRoot = 53

// colorToRoot maps a scene color to a root note (octave 3).
var colorToRoot = map[Color]int{
	ColorRed:    57, // A
	ColorOrange: 59, // B
	ColorYellow: 60, // C
	ColorGreen:  62, // D
	ColorBlue:   58, // Bb
	ColorPurple: 56, // Ab
	ColorBrown:  55, // G
	ColorGray:   53, // F
	ColorBlack:  51, // Eb
	ColorWhite:  60, // C
}

type harmony struct {
	chord     ChordType
	scale     Scale
	intensity float64
}

var defaultHarmony = harmony{ChordDom7, ScaleMixolydian, 0.6}

var moodToHarmony = map[Mood]harmony{
	MoodHappy:   {ChordMaj9, ScaleMajor, 0.8},
	MoodSad:     {ChordMin9, ScaleMinor, 0.4},
	MoodCalm:    {ChordMaj7, ScaleDorian, 0.3},
	MoodExcited: {ChordDom9, ScaleMixolydian, 0.9},
	MoodSerious: {ChordMin7, ScaleDorian, 0.5},
	MoodNeutral: defaultHarmony,
}

const defaultDensity = 0.5

var activityToDensity = map[Activity]float64{
	ActivitySitting:  0.3,
	ActivityStanding: 0.5,
	ActivityWalking:  0.7,
	ActivityTalking:  0.6,
	ActivityWaving:   0.8,
	ActivityNone:     0.4,
}

var objectToCharacter = map[Object]Character{
	ObjectComputer: CharStaccato,
	ObjectPhone:    CharGlitchy,
	ObjectCup:      CharWarm,
	ObjectChair:    CharSteady,
	ObjectBook:     CharFlowing,
	ObjectPlant:    CharOrganic,
	ObjectWindow:   CharAiry,
	ObjectNone:     CharNeutral,
}

type dynamics struct {
	tempoMult      float64
	intensityScale float64
}

var defaultDynamics = dynamics{1.0, 0.7}

var energyToDynamics = map[Energy]dynamics{
	EnergyLow:    {0.85, 0.4},
	EnergyMedium: {1.0, 0.7},
	EnergyHigh:   {1.1, 1.0},
}

// ChordIntervals returns the semitone offsets for a chord type.
// Unknown types fall back to dominant seventh.
func ChordIntervals(c ChordType) []int {
	if iv, ok := chordIntervals[c]; ok {
		return iv
	}
	return chordIntervals[ChordDom7]
}

var chordIntervals = map[ChordType][]int{
	ChordMaj7:  {0, 4, 7, 11},
	ChordMin7:  {0, 3, 7, 10},
	ChordDom7:  {0, 4, 7, 10},
	ChordDim7:  {0, 3, 6, 9},
	ChordMin9:  {0, 3, 7, 10, 14},
	ChordMaj9:  {0, 4, 7, 11, 14},
	ChordDom9:  {0, 4, 7, 10, 14},
	ChordMin11: {0, 3, 7, 10, 14, 17},
	ChordDom13: {0, 4, 7, 10, 14, 21},
}

// ScaleIntervals returns the semitone offsets for a scale.
// Unknown scales fall back to mixolydian.
func ScaleIntervals(s Scale) []int {
	if iv, ok := scaleIntervals[s]; ok {
		return iv
	}
	return scaleIntervals[ScaleMixolydian]
}

var scaleIntervals = map[Scale][]int{
	ScaleMinor:           {0, 2, 3, 5, 7, 8, 10},
	ScaleMajor:           {0, 2, 4, 5, 7, 9, 11},
	ScaleDorian:          {0, 2, 3, 5, 7, 9, 10},
	ScaleMixolydian:      {0, 2, 4, 5, 7, 9, 10},
	ScaleBlues:           {0, 3, 5, 6, 7, 10},
	ScalePentatonicMinor: {0, 3, 5, 7, 10},
}
