// Package convert turns a pair of Shimeji-ee "actions.xml"/"behaviors.xml"
// documents into the programs/actions/behaviors JSON documents the overlay
// daemon imports, following the three-pass algorithm of the original
// engine's converter.
package convert

import "github.com/wired-desktop/shimejictl/convert/orderedmap"

// ActionType is the fixed set of top-level action kinds.
type ActionType string

//nolint:revive
const (
	ActionFall     ActionType = "Fall"
	ActionMove     ActionType = "Move"
	ActionEmbedded ActionType = "Embedded"
	ActionStay     ActionType = "Stay"
	ActionAnimate  ActionType = "Animate"
	ActionSequence ActionType = "Sequence"
	ActionSelect   ActionType = "Select"
)

// EmbeddedType names the built-in behavior an Embedded action triggers.
type EmbeddedType string

//nolint:revive
const (
	EmbeddedJump       EmbeddedType = "Jump"
	EmbeddedFall       EmbeddedType = "Fall"
	EmbeddedLook       EmbeddedType = "Look"
	EmbeddedOffset     EmbeddedType = "Offset"
	EmbeddedFallWithIE EmbeddedType = "FallWithIE"
	EmbeddedJumpWithIE EmbeddedType = "JumpWithIE"
	EmbeddedWalkWithIE EmbeddedType = "WalkWithIE"
	EmbeddedThrowIE    EmbeddedType = "ThrowIE"
	EmbeddedDragged    EmbeddedType = "Dragged"
	EmbeddedResist     EmbeddedType = "Resist"
	EmbeddedBreed      EmbeddedType = "Breed"
	EmbeddedBroadcast  EmbeddedType = "Broadcast"
	EmbeddedScanMove   EmbeddedType = "ScanMove"
	EmbeddedInteract   EmbeddedType = "Interact"
	EmbeddedTransform  EmbeddedType = "Transform"
	EmbeddedScanjump   EmbeddedType = "Scanjump"
	EmbeddedDispose    EmbeddedType = "Dispose"
	EmbeddedMute       EmbeddedType = "Mute"
)

var embeddedTypes = []EmbeddedType{
	EmbeddedJump, EmbeddedFall, EmbeddedLook, EmbeddedOffset, EmbeddedFallWithIE,
	EmbeddedJumpWithIE, EmbeddedWalkWithIE, EmbeddedThrowIE, EmbeddedDragged,
	EmbeddedResist, EmbeddedBreed, EmbeddedBroadcast, EmbeddedScanMove,
	EmbeddedInteract, EmbeddedTransform, EmbeddedScanjump, EmbeddedDispose,
	EmbeddedMute,
}

// classNameToEmbeddedType maps an Action's Class attribute to its
// EmbeddedType. Two Java class names don't follow the "Name suffix
// matches enum member" rule and are remapped explicitly.
var classNameToEmbeddedType = buildClassNameToEmbeddedType()

func buildClassNameToEmbeddedType() map[string]EmbeddedType {
	const prefix = "com.group_finity.mascot.action."
	m := make(map[string]EmbeddedType, len(embeddedTypes)+2)
	for _, et := range embeddedTypes {
		m[prefix+string(et)] = et
	}
	m[prefix+"Regist"] = EmbeddedResist
	m[prefix+"SelfDestruct"] = EmbeddedDispose
	return m
}

// mascotVarNames is the fixed attribute-name list that marks a value as a
// mascot-local variable, both for program discovery and for populating an
// action/reference's local_variables map.
var mascotVarNames = map[string]bool{
	"X": true, "Y": true, "TargetX": true, "TargetY": true,
	"VelocityParam": true, "InitialVX": true, "InitialVY": true,
	"Gravity": true, "RegistanceX": true, "RegistanceY": true,
	"LookRight": true, "IeOffsetX": true, "IeOffsetY": true,
	"BornX": true, "BornY": true, "Duration": true, "BornInterval": true,
	"BornCount": true, "BornTransient": true, "Loop": true, "Condition": true,
	"FootX": true, "FootDX": true, "OffsetX": true, "OffsetY": true,
	"Gap": true,
}

// Frame is one <Pose> of an <Animation>.
type Frame struct {
	Type         string `json:"type"`
	Image        string `json:"image"`
	ImageRight   string `json:"image_right"`
	ImageAnchorX int    `json:"image_anchor_x"`
	ImageAnchorY int    `json:"image_anchor_y"`
	VelocityX    int    `json:"velocity_x"`
	VelocityY    int    `json:"velocity_y"`
	Duration     int    `json:"duration"`
}

// Hotspot is one <Hotspot> of an <Animation>.
type Hotspot struct {
	Type     string  `json:"type"`
	Shape    string  `json:"shape"`
	X        int     `json:"x"`
	Y        int     `json:"y"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Behavior *string `json:"behavior"`
}

// Animation is an action content entry listing frames and hotspots.
type Animation struct {
	Type          string    `json:"type"`
	Condition     *int      `json:"condition"`
	Frames        []Frame   `json:"frames"`
	Hotspots      []Hotspot `json:"hotspots"`
	FrameCount    int       `json:"frame_count"`
	HotspotsCount int       `json:"hotspots_count"`
}

// ActionReference is an action content entry (or a standalone
// <ActionReference>) pointing at another action by name.
type ActionReference struct {
	Type            string         `json:"type"`
	ActionName      string         `json:"action_name"`
	Duration        *int           `json:"duration"`
	Condition       *int           `json:"condition"`
	LocalsOverrides map[string]int `json:"locals_overrides"`
	LocalsCount     int            `json:"locals_count"`
}

// ActionDef is a fully parsed <Action>.
type ActionDef struct {
	Type                string         `json:"type"`
	Name                string         `json:"name"`
	Content             []any          `json:"content"`
	ContentCount        int            `json:"content_count"`
	LocalVariables      map[string]int `json:"local_variables"`
	LocalVariablesCount int            `json:"local_variables_count"`
	EmbeddedType        *string        `json:"embedded_type"`
	Loop                bool           `json:"loop"`
	Condition           *int           `json:"condition"`
	BorderType          string         `json:"border_type"`
	TargetBehavior      *string        `json:"target_behavior,omitempty"`
	BornBehavior        *string        `json:"born_behavior,omitempty"`
	SelectBehavior      *string        `json:"select_behavior,omitempty"`
	Affordance          *string        `json:"affordance,omitempty"`
	TransformTarget     *string        `json:"transform_target,omitempty"`
	Behavior            *string        `json:"behavior,omitempty"`
	BornMascot          *string        `json:"born_mascot,omitempty"`
	TargetLook          *bool          `json:"target_look,omitempty"`
}

// BehaviorRef is an unresolved-at-emit-time pointer to a behavior by
// name, weighted by selection frequency.
type BehaviorRef struct {
	Name      string `json:"name"`
	Frequency int    `json:"frequency"`
}

// BehaviorDef is a fully parsed <Behavior> or <Condition>.
type BehaviorDef struct {
	Name                  string        `json:"name"`
	Action                *string       `json:"action"`
	NextBehaviorList      []BehaviorRef `json:"next_behavior_list"`
	NextBehaviorListCount int           `json:"next_behavior_list_count"`
	Hidden                bool          `json:"hidden"`
	Condition             *int          `json:"condition"`
	IsConditioner         bool          `json:"is_conditioner"`
	NextBehaviorListAdd   bool          `json:"next_behavior_list_add"`
	Frequency             int           `json:"frequency"`
}

// Warning is a non-fatal diagnostic raised while converting (an unknown
// child tag, a missing standard behavior, and the like).
type Warning struct {
	Message string
}

func (w Warning) Error() string { return w.Message }

// Result is the output of Convert: the deduplicated program-candidate
// list, the action/behavior definition tables (insertion-ordered), and
// the behavior references reachable from the top level.
type Result struct {
	Programs      []string
	Actions       *orderedmap.Map[string, *ActionDef]
	Behaviors     *orderedmap.Map[string, *BehaviorDef]
	RootBehaviors []BehaviorRef
}
