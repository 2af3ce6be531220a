package traversal

// Mode selects which top-level integration drives the base velocity update.
// Ability handlers stay constructed in every mode; jump, slide and mantle are
// inert outside ModeDefault.
type Mode uint8

const (
	ModeDefault Mode = iota
	ModeNoClip
)

func (m Mode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case ModeNoClip:
		return "noclip"
	}
	return "unknown"
}
