package convert

import (
	"strconv"
	"strings"
)

// parseVector parses a "w,h" attribute into two ints, falling back to
// (0, 0) for an empty string and duplicating a single bare value across
// both components (e.g. "4" -> (4, 4)).
func parseVector(raw string) (int, int) {
	if raw == "" {
		return 0, 0
	}
	parts := strings.Split(raw, ",")
	a, _ := strconv.Atoi(strings.TrimSpace(parts[0]))
	if len(parts) != 2 {
		return a, a
	}
	b, _ := strconv.Atoi(strings.TrimSpace(parts[1]))
	return a, b
}

// normalizeImagePath strips a leading slash and rewrites a ".png"
// extension to ".qoi", the container format images ship in.
func normalizeImagePath(raw string) string {
	if raw == "" {
		return ""
	}
	raw = strings.TrimPrefix(raw, "/")
	raw = strings.ReplaceAll(raw, ".png", ".qoi")
	return raw
}

// parseAnimation parses one <Animation>: its optional Condition plus
// <Pose> frames and <Hotspot> entries, in document order.
func (c *converter) parseAnimation(node *xmlNode) (*Animation, error) {
	anim := &Animation{Type: "Animation"}

	if cond, ok := node.attr("Condition"); ok && cond != "" {
		idx, err := c.requireProgramIndex(cond)
		if err != nil {
			return nil, err
		}
		anim.Condition = &idx
	}

	for i := range node.Children {
		child := &node.Children[i]
		switch child.XMLName.Local {
		case "Pose":
			anim.Frames = append(anim.Frames, parsePose(child))
			anim.FrameCount++
		case "Hotspot":
			anim.Hotspots = append(anim.Hotspots, parseHotspot(child))
			anim.HotspotsCount++
		default:
			c.warn("unknown tag in animation: " + child.XMLName.Local + "; skipping")
		}
	}

	return anim, nil
}

func parsePose(node *xmlNode) Frame {
	ax, ay := parseVector(node.attrDefault("ImageAnchor", ""))
	vx, vy := parseVector(node.attrDefault("Velocity", ""))
	duration, _ := strconv.Atoi(node.attrDefault("Duration", "0"))
	return Frame{
		Type:         "Frame",
		Image:        normalizeImagePath(node.attrDefault("Image", "")),
		ImageRight:   normalizeImagePath(node.attrDefault("ImageRight", "")),
		ImageAnchorX: ax,
		ImageAnchorY: ay,
		VelocityX:    vx,
		VelocityY:    vy,
		Duration:     duration,
	}
}

func parseHotspot(node *xmlNode) Hotspot {
	x, y := parseVector(node.attrDefault("Origin", "0,0"))
	w, h := parseVector(node.attrDefault("Size", "0,0"))
	hs := Hotspot{
		Type:   "Hotspot",
		Shape:  node.attrDefault("Shape", "Rectangle"),
		X:      x,
		Y:      y,
		Width:  w,
		Height: h,
	}
	if b, ok := node.attr("Behavior"); ok {
		hs.Behavior = &b
	}
	return hs
}
