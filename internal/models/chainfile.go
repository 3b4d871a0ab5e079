package models

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// chainDocument is the YAML layout of a chain file:
//
//	filters:
//	  - kind: rotate
//	    angle: 90
//	  - kind: blur
//	    enabled: false
//	    intensity: 3
type chainDocument struct {
	Filters []filterEntry `yaml:"filters"`
}

type filterEntry struct {
	Kind      string   `yaml:"kind"`
	Enabled   *bool    `yaml:"enabled,omitempty"`
	Threshold *int     `yaml:"threshold,omitempty"`
	Angle     *float64 `yaml:"angle,omitempty"`
	Axis      *string  `yaml:"axis,omitempty"`
	Left      *float64 `yaml:"left,omitempty"`
	Top       *float64 `yaml:"top,omitempty"`
	Right     *float64 `yaml:"right,omitempty"`
	Bottom    *float64 `yaml:"bottom,omitempty"`
	Intensity *int     `yaml:"intensity,omitempty"`
}

// allowedKeys lists the parameter keys each kind accepts
var allowedKeys = map[TransformKind][]string{
	KindScan:      {"threshold"},
	KindRotate:    {"angle"},
	KindFlip:      {"axis"},
	KindCrop:      {"left", "top", "right", "bottom"},
	KindSharpen:   nil,
	KindBlur:      {"intensity"},
	KindSmooth:    {"intensity"},
	KindEmboss:    nil,
	KindGreyscale: nil,
}

// ReadChain decodes a YAML chain document. The position of each entry
// becomes its order index. Parameter domains are not checked here.
func ReadChain(r io.Reader) (Chain, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var doc chainDocument
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Chain{}, nil
		}
		return nil, fmt.Errorf("failed to decode chain: %w", err)
	}

	chain := make(Chain, 0, len(doc.Filters))
	for i, entry := range doc.Filters {
		fd, err := entry.descriptor(i)
		if err != nil {
			return nil, fmt.Errorf("filter %d: %w", i, err)
		}
		chain = append(chain, fd)
	}
	return chain, nil
}

// WriteChain encodes a chain in the layout read by ReadChain, ordered by
// OrderIndex.
func WriteChain(w io.Writer, chain Chain) error {
	doc := chainDocument{Filters: make([]filterEntry, 0, len(chain))}
	for _, fd := range chain.Sorted() {
		entry, err := entryFor(fd)
		if err != nil {
			return err
		}
		doc.Filters = append(doc.Filters, entry)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("failed to encode chain: %w", err)
	}
	return encoder.Close()
}

// ParseFilterSpec parses the compact command line form
// "kind[:key=value,key=value]", e.g. "crop:left=10,right=10".
func ParseFilterSpec(spec string, orderIndex int) (FilterDescriptor, error) {
	name, rest, _ := strings.Cut(strings.TrimSpace(spec), ":")

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "kind: %s\n", strconv.Quote(name))
	if rest != "" {
		for _, pair := range strings.Split(rest, ",") {
			key, value, ok := strings.Cut(pair, "=")
			if !ok {
				return FilterDescriptor{}, fmt.Errorf("malformed parameter %q in %q", pair, spec)
			}
			fmt.Fprintf(&buf, "%s: %s\n", strings.TrimSpace(key), strings.TrimSpace(value))
		}
	}

	var entry filterEntry
	decoder := yaml.NewDecoder(&buf)
	decoder.KnownFields(true)
	if err := decoder.Decode(&entry); err != nil {
		return FilterDescriptor{}, fmt.Errorf("malformed filter %q: %w", spec, err)
	}

	return entry.descriptor(orderIndex)
}

func (fe filterEntry) descriptor(orderIndex int) (FilterDescriptor, error) {
	kind, err := ParseKind(strings.ToLower(fe.Kind))
	if err != nil {
		return FilterDescriptor{}, err
	}

	if err := fe.checkKeys(kind); err != nil {
		return FilterDescriptor{}, err
	}

	fd, err := NewDescriptor(kind, orderIndex)
	if err != nil {
		return FilterDescriptor{}, err
	}
	if fe.Enabled != nil {
		fd.Enabled = *fe.Enabled
	}

	switch kind {
	case KindScan:
		p := fd.Params.(ScanParams)
		setInt(&p.Threshold, fe.Threshold)
		fd.Params = p
	case KindRotate:
		p := fd.Params.(RotateParams)
		setFloat(&p.Angle, fe.Angle)
		fd.Params = p
	case KindFlip:
		p := fd.Params.(FlipParams)
		if fe.Axis != nil {
			p.Axis = FlipAxis(strings.ToLower(*fe.Axis))
		}
		fd.Params = p
	case KindCrop:
		p := fd.Params.(CropParams)
		setFloat(&p.Left, fe.Left)
		setFloat(&p.Top, fe.Top)
		setFloat(&p.Right, fe.Right)
		setFloat(&p.Bottom, fe.Bottom)
		fd.Params = p
	case KindBlur:
		p := fd.Params.(BlurParams)
		setInt(&p.Intensity, fe.Intensity)
		fd.Params = p
	case KindSmooth:
		p := fd.Params.(SmoothParams)
		setInt(&p.Intensity, fe.Intensity)
		fd.Params = p
	}

	return fd, nil
}

func (fe filterEntry) checkKeys(kind TransformKind) error {
	present := map[string]bool{
		"threshold": fe.Threshold != nil,
		"angle":     fe.Angle != nil,
		"axis":      fe.Axis != nil,
		"left":      fe.Left != nil,
		"top":       fe.Top != nil,
		"right":     fe.Right != nil,
		"bottom":    fe.Bottom != nil,
		"intensity": fe.Intensity != nil,
	}
	for _, key := range allowedKeys[kind] {
		delete(present, key)
	}
	for key, set := range present {
		if set {
			return fmt.Errorf("parameter %q does not apply to %s", key, kind)
		}
	}
	return nil
}

func entryFor(fd FilterDescriptor) (filterEntry, error) {
	enabled := fd.Enabled
	entry := filterEntry{Kind: string(fd.Kind), Enabled: &enabled}

	switch p := fd.Params.(type) {
	case ScanParams:
		entry.Threshold = &p.Threshold
	case RotateParams:
		entry.Angle = &p.Angle
	case FlipParams:
		axis := string(p.Axis)
		entry.Axis = &axis
	case CropParams:
		entry.Left, entry.Top, entry.Right, entry.Bottom = &p.Left, &p.Top, &p.Right, &p.Bottom
	case BlurParams:
		entry.Intensity = &p.Intensity
	case SmoothParams:
		entry.Intensity = &p.Intensity
	case SharpenParams, EmbossParams, GreyscaleParams:
	default:
		return filterEntry{}, fmt.Errorf("filter %s: unsupported parameters %T", fd.Kind, fd.Params)
	}
	return entry, nil
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
