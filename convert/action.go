package convert

import "fmt"

func validActionType(t ActionType) bool {
	switch t {
	case ActionFall, ActionMove, ActionEmbedded, ActionStay, ActionAnimate, ActionSequence, ActionSelect:
		return true
	default:
		return false
	}
}

func allowsNestedActions(t ActionType) bool {
	return t == ActionSequence || t == ActionSelect
}

// parseAction parses one <Action> element, recursing into nested
// <Action>/<ActionReference>/<Animation> children. depth 0 is a
// top-level action directly under <ActionList>; every deeper Action
// requires nesting under a Sequence or Select parent.
func (c *converter) parseAction(node *xmlNode, depth int) (*ActionDef, error) {
	typeAttr, ok := node.attr("Type")
	if !ok {
		return nil, fmt.Errorf("convert: Action missing Type attribute")
	}
	actionType := ActionType(typeAttr)
	if !validActionType(actionType) {
		return nil, fmt.Errorf("convert: unknown action type %q", typeAttr)
	}

	def := &ActionDef{
		Type:           string(actionType),
		LocalVariables: map[string]int{},
		BorderType:     node.attrDefault("BorderType", "Any"),
	}

	if class, ok := node.attr("Class"); ok {
		if et, ok := classNameToEmbeddedType[class]; ok {
			s := string(et)
			def.EmbeddedType = &s
		}
	}
	def.Loop = node.attrDefault("Loop", "false") == "true"

	if cond, ok := node.attr("Condition"); ok {
		idx, err := c.requireProgramIndex(cond)
		if err != nil {
			return nil, err
		}
		def.Condition = &idx
	}

	name, hasName := node.attr("Name")
	if !hasName || name == "" {
		if depth == 0 {
			return nil, fmt.Errorf("convert: root action must have a Name")
		}
		name = fmt.Sprintf("___INLINED_ACTION_%d", c.inlinedAction)
		c.inlinedAction++
	}
	def.Name = name

	for i := range node.Children {
		child := &node.Children[i]
		switch child.XMLName.Local {
		case "Action":
			if !allowsNestedActions(actionType) {
				c.warn(fmt.Sprintf("action type %s does not support nested actions", actionType))
				continue
			}
			childDef, err := c.parseAction(child, depth+1)
			if err != nil {
				return nil, err
			}
			ref := &ActionReference{Type: "ActionReference", ActionName: childDef.Name, LocalsOverrides: map[string]int{}}
			if dur, ok := child.attr("Duration"); ok {
				idx, err := c.requireProgramIndex(dur)
				if err != nil {
					return nil, err
				}
				ref.Duration = &idx
			}
			if cond, ok := child.attr("Condition"); ok {
				idx, err := c.requireProgramIndex(cond)
				if err != nil {
					return nil, err
				}
				ref.Condition = &idx
			}
			def.Content = append(def.Content, ref)
			def.ContentCount++

		case "ActionReference":
			if !allowsNestedActions(actionType) {
				c.warn(fmt.Sprintf("action type %s does not support nested actions", actionType))
				continue
			}
			ref, err := c.parseActionReference(child)
			if err != nil {
				return nil, err
			}
			def.Content = append(def.Content, ref)
			def.ContentCount++

		case "Animation":
			if allowsNestedActions(actionType) {
				c.warn(fmt.Sprintf("action type %s does not support animations", actionType))
				continue
			}
			anim, err := c.parseAnimation(child)
			if err != nil {
				return nil, err
			}
			def.Content = append(def.Content, anim)
			def.ContentCount++
		}
	}

	for _, a := range node.Attrs {
		if mascotVarNames[a.Name.Local] {
			idx, err := c.requireProgramIndex(a.Value)
			if err != nil {
				return nil, err
			}
			def.LocalVariables["mascot."+a.Name.Local] = idx
		}
		switch a.Name.Local {
		case "TargetBehavior":
			v := a.Value
			def.TargetBehavior = &v
		case "BornBehavior":
			v := a.Value
			def.BornBehavior = &v
		case "SelectBehavior":
			v := a.Value
			def.SelectBehavior = &v
		case "Affordance":
			v := a.Value
			def.Affordance = &v
		case "TransformMascot":
			v := a.Value
			def.TransformTarget = &v
		case "Behavior":
			v := a.Value
			def.Behavior = &v
		case "BornMascot":
			v := resolveBornMascot(a.Value)
			def.BornMascot = &v
		case "TargetLook":
			v := a.Value == "true"
			def.TargetLook = &v
		}
	}

	if c.actions.Has(def.Name) {
		return nil, fmt.Errorf("convert: action %q redefinition", def.Name)
	}

	delete(def.LocalVariables, "mascot.Duration")
	delete(def.LocalVariables, "mascot.Loop")
	def.LocalVariablesCount = len(def.LocalVariables)

	if actionType == ActionSelect && def.Affordance == nil {
		inheritSelectAffordance(def)
	}

	c.actions.Set(def.Name, def)
	return def, nil
}

// inheritSelectAffordance implements the affordance-inheritance
// supplement: a Select action with no explicit Affordance adopts the
// behavior of the first hotspot that names one, across its Animation
// content in document order.
func inheritSelectAffordance(def *ActionDef) {
	for _, item := range def.Content {
		anim, ok := item.(*Animation)
		if !ok {
			continue
		}
		for _, hs := range anim.Hotspots {
			if hs.Behavior != nil {
				v := *hs.Behavior
				def.Affordance = &v
				return
			}
		}
	}
}

// resolveBornMascot maps an empty BornMascot attribute (present but
// unset) to a sentinel an importer resolves to the owning prototype.
func resolveBornMascot(value string) string {
	if value == "" {
		return selfMascotSentinel
	}
	return value
}

// parseActionReference parses a standalone <ActionReference> child of a
// Sequence/Select action.
func (c *converter) parseActionReference(node *xmlNode) (*ActionReference, error) {
	name, ok := node.attr("Name")
	if !ok || name == "" {
		return nil, fmt.Errorf("convert: ActionReference missing Name attribute")
	}

	ref := &ActionReference{Type: "ActionReference", ActionName: name, LocalsOverrides: map[string]int{}}
	if dur, ok := node.attr("Duration"); ok {
		idx, err := c.requireProgramIndex(dur)
		if err != nil {
			return nil, err
		}
		ref.Duration = &idx
	}
	if cond, ok := node.attr("Condition"); ok {
		idx, err := c.requireProgramIndex(cond)
		if err != nil {
			return nil, err
		}
		ref.Condition = &idx
	}

	for _, a := range node.Attrs {
		if mascotVarNames[a.Name.Local] {
			idx, err := c.requireProgramIndex(a.Value)
			if err != nil {
				return nil, err
			}
			ref.LocalsOverrides["mascot."+a.Name.Local] = idx
		}
	}
	delete(ref.LocalsOverrides, "mascot.Duration")
	delete(ref.LocalsOverrides, "mascot.Loop")
	ref.LocalsCount = len(ref.LocalsOverrides)

	return ref, nil
}
