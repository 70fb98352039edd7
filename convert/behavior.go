package convert

import "fmt"

// redefinitionError signals that a <Behavior>/<Condition> name was
// already defined; the caller downgrades it to a BehaviorRef rather
// than propagating it as a hard failure (first definition wins, later
// mentions become references).
type redefinitionError struct {
	name string
}

func (e *redefinitionError) Error() string {
	return fmt.Sprintf("convert: behavior %q redefinition", e.name)
}

func toRef(def *BehaviorDef) BehaviorRef {
	return BehaviorRef{Name: def.Name, Frequency: def.Frequency}
}

// parseBehaviorList parses every top-level <Behavior>/<Condition> under
// a <BehaviorList>, recording each as a root behavior reference.
func (c *converter) parseBehaviorList(node *xmlNode) error {
	for i := range node.Children {
		child := &node.Children[i]
		switch child.XMLName.Local {
		case "Behavior", "Condition":
			def, err := c.parseBehavior(child)
			if err != nil {
				return err
			}
			c.rootBehaviors = append(c.rootBehaviors, toRef(def))
		default:
			return fmt.Errorf("convert: unexpected child %q of BehaviorList", child.XMLName.Local)
		}
	}
	return nil
}

// parseBehavior parses a <Behavior> or <Condition> element. A <Condition>
// is a synthetic, hidden, zero-frequency conditioner behavior whose
// children are itself a list of sub-behaviors.
func (c *converter) parseBehavior(node *xmlNode) (*BehaviorDef, error) {
	switch node.XMLName.Local {
	case "Condition":
		return c.parseConditionBehavior(node)
	case "Behavior":
		return c.parseNamedBehavior(node)
	default:
		return nil, fmt.Errorf("convert: unexpected behavior tag %q", node.XMLName.Local)
	}
}

func (c *converter) parseConditionBehavior(node *xmlNode) (*BehaviorDef, error) {
	def := &BehaviorDef{
		Name:          fmt.Sprintf("___CONDITION_%d", c.inlinedBehavior),
		IsConditioner: true,
		Hidden:        true,
		Frequency:     0,
	}
	c.inlinedBehavior++

	if cond, ok := node.attr("Condition"); ok {
		idx, err := c.requireProgramIndex(cond)
		if err != nil {
			return nil, err
		}
		def.Condition = &idx
	}

	for i := range node.Children {
		child := &node.Children[i]
		ref, err := c.parseBehaviorOrReference(child)
		if err != nil {
			return nil, err
		}
		def.NextBehaviorList = append(def.NextBehaviorList, ref)
		def.NextBehaviorListCount++
	}

	if c.behaviors.Has(def.Name) {
		return nil, &redefinitionError{name: def.Name}
	}
	c.behaviors.Set(def.Name, def)
	return def, nil
}

func (c *converter) parseNamedBehavior(node *xmlNode) (*BehaviorDef, error) {
	name, ok := node.attr("Name")
	if !ok || name == "" {
		return nil, fmt.Errorf("convert: Behavior missing Name attribute")
	}
	if c.behaviors.Has(name) {
		return nil, &redefinitionError{name: name}
	}

	// Registered before its children are parsed, so a nested mention of
	// the same name is downgraded to a reference to this definition.
	def := &BehaviorDef{
		Name:                name,
		NextBehaviorListAdd: true,
	}
	c.behaviors.Set(def.Name, def)
	if freq, ok := node.attr("Frequency"); ok {
		def.Frequency = atoiOrZero(freq)
	}
	if cond, ok := node.attr("Condition"); ok {
		idx, err := c.requireProgramIndex(cond)
		if err != nil {
			return nil, err
		}
		def.Condition = &idx
	}

	for i := range node.Children {
		child := &node.Children[i]
		if child.XMLName.Local != "NextBehaviorList" {
			continue
		}
		if child.attrDefault("Add", "true") == "false" {
			def.NextBehaviorListAdd = false
		}
		for j := range child.Children {
			sub := &child.Children[j]
			ref, err := c.parseBehaviorListEntry(sub)
			if err != nil {
				return nil, err
			}
			def.NextBehaviorList = append(def.NextBehaviorList, ref)
			def.NextBehaviorListCount++
		}
	}

	if action, ok := node.attr("Action"); ok && action != "" {
		v := action
		def.Action = &v
	} else {
		v := def.Name
		def.Action = &v
	}
	if !c.actions.Has(*def.Action) {
		return nil, fmt.Errorf("convert: action %q not defined", *def.Action)
	}

	return def, nil
}

// parseBehaviorOrReference handles a <Condition>'s children, which are
// full recursive behavior definitions (falling back to a bare reference
// on redefinition).
func (c *converter) parseBehaviorOrReference(node *xmlNode) (BehaviorRef, error) {
	def, err := c.parseBehavior(node)
	if err != nil {
		var redef *redefinitionError
		if asRedefinition(err, &redef) {
			name, _ := node.attr("Name")
			return BehaviorRef{Name: name, Frequency: atoiOrZero(node.attrDefault("Frequency", "0"))}, nil
		}
		return BehaviorRef{}, err
	}
	return toRef(def), nil
}

// parseBehaviorListEntry handles a <NextBehaviorList>'s children, which
// may be a full <Behavior>/<Condition> definition or a bare
// <BehaviorReference>.
func (c *converter) parseBehaviorListEntry(node *xmlNode) (BehaviorRef, error) {
	switch node.XMLName.Local {
	case "Behavior":
		def, err := c.parseBehavior(node)
		if err != nil {
			var redef *redefinitionError
			if asRedefinition(err, &redef) {
				name, _ := node.attr("Name")
				return BehaviorRef{Name: name, Frequency: atoiOrZero(node.attrDefault("Frequency", "0"))}, nil
			}
			return BehaviorRef{}, err
		}
		return toRef(def), nil
	case "Condition":
		def, err := c.parseBehavior(node)
		if err != nil {
			return BehaviorRef{}, err
		}
		return toRef(def), nil
	case "BehaviorReference":
		name, ok := node.attr("Name")
		if !ok {
			return BehaviorRef{}, fmt.Errorf("convert: BehaviorReference missing Name attribute")
		}
		return BehaviorRef{Name: name, Frequency: atoiOrZero(node.attrDefault("Frequency", "0"))}, nil
	default:
		return BehaviorRef{}, fmt.Errorf("convert: unexpected child %q of NextBehaviorList", node.XMLName.Local)
	}
}

func asRedefinition(err error, target **redefinitionError) bool {
	redef, ok := err.(*redefinitionError)
	if ok {
		*target = redef
	}
	return ok
}

func atoiOrZero(s string) int {
	n := 0
	neg := false
	for i, r := range s {
		if i == 0 && r == '-' {
			neg = true
			continue
		}
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	if neg {
		n = -n
	}
	return n
}
