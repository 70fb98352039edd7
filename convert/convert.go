package convert

import (
	"fmt"
	"strings"

	"github.com/dolthub/swiss"
	"github.com/wired-desktop/shimejictl/convert/orderedmap"
	"golang.org/x/exp/slices"
)

// selfMascotSentinel marks a BornMascot attribute present but left empty,
// the source engine's "spawn more of myself" shorthand (no prototype name
// is known at conversion time, so resolving it is left to the importer).
const selfMascotSentinel = "__self__"

// converter holds the per-conversion state the original engine kept in
// module globals (autoincrement counters, the program-candidate dedup
// set), scoped to one Convert call instead.
type converter struct {
	programs     []string
	programIndex *swiss.Map[string, int]

	actions   *orderedmap.Map[string, *ActionDef]
	behaviors *orderedmap.Map[string, *BehaviorDef]

	rootBehaviors []BehaviorRef

	inlinedAction   int
	inlinedBehavior int

	warnings []Warning
}

func (c *converter) warn(msg string) {
	c.warnings = append(c.warnings, Warning{Message: msg})
}

// Convert parses actionsXML and behaviorsXML (both in the
// "http://www.group-finity.com/Mascot" namespace) and produces the
// program-candidate list plus the action/behavior definition tables.
func Convert(actionsXML, behaviorsXML []byte) (*Result, []Warning, error) {
	actionsRoot, err := parseXML(actionsXML)
	if err != nil {
		return nil, nil, fmt.Errorf("convert: parsing actions.xml: %w", err)
	}
	behaviorsRoot, err := parseXML(behaviorsXML)
	if err != nil {
		return nil, nil, fmt.Errorf("convert: parsing behaviors.xml: %w", err)
	}

	c := &converter{
		programIndex: swiss.NewMap[string, int](64),
		actions:      orderedmap.New[string, *ActionDef](32),
		behaviors:    orderedmap.New[string, *BehaviorDef](32),
	}

	c.discoverPrograms(actionsRoot)
	c.discoverPrograms(behaviorsRoot)

	for _, list := range actionsRoot.childrenNamed("ActionList") {
		for _, action := range list.childrenNamed("Action") {
			if _, err := c.parseAction(action, 0); err != nil {
				return nil, c.warnings, err
			}
		}
	}

	c.sortDefinitionsBeforeDependents()

	for _, list := range behaviorsRoot.childrenNamed("BehaviorList") {
		if err := c.parseBehaviorList(list); err != nil {
			return nil, c.warnings, err
		}
	}

	for _, required := range []string{"Fall", "Dragged", "Thrown"} {
		if !c.behaviors.Has(required) {
			c.warn(fmt.Sprintf("%s behavior not defined; it is required for execution and will not load", required))
		}
	}

	return &Result{
		Programs:      c.programs,
		Actions:       c.actions,
		Behaviors:     c.behaviors,
		RootBehaviors: c.rootBehaviors,
	}, c.warnings, nil
}

// discoverPrograms is pass 1: every attribute of every element in root is
// a program candidate if its name is a mascot variable or its value is
// wrapped in "${" / "#{", deduped by first occurrence.
func (c *converter) discoverPrograms(root *xmlNode) {
	root.walk(func(n *xmlNode) {
		for _, a := range n.Attrs {
			c.considerProgramCandidate(a.Name.Local, a.Value)
		}
	})
}

func (c *converter) considerProgramCandidate(attrName, value string) {
	if _, seen := c.programIndex.Get(value); seen {
		return
	}
	if mascotVarNames[attrName] {
		c.addProgram(value)
		return
	}
	if strings.HasPrefix(value, "${") || strings.HasPrefix(value, "#{") {
		c.addProgram(value)
	}
}

func (c *converter) addProgram(value string) {
	idx := len(c.programs)
	c.programs = append(c.programs, value)
	c.programIndex.Put(value, idx)
}

// requireProgramIndex resolves value's position in the program-candidate
// list, failing if pass 1 never recorded it.
func (c *converter) requireProgramIndex(value string) (int, error) {
	idx, ok := c.programIndex.Get(value)
	if !ok {
		return 0, fmt.Errorf("convert: expression %q was not discovered as a program candidate", value)
	}
	return idx, nil
}

// sortDefinitionsBeforeDependents is the post-processing pass: actions
// that are not Sequence/Select come first so downstream consumers never
// need a forward reference, stable on ties.
func (c *converter) sortDefinitionsBeforeDependents() {
	keys := append([]string(nil), c.actions.Keys()...)
	rank := func(k string) int {
		def, _ := c.actions.Get(k)
		if def.Type == string(ActionSequence) || def.Type == string(ActionSelect) {
			return 1
		}
		return 0
	}
	slices.SortStableFunc(keys, func(a, b string) int { return rank(a) - rank(b) })
	c.actions.Reorder(keys)
}
