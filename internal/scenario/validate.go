package scenario

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/interpoli/pkg/timecode"
)

// ErrInvalid wraps every problem reported by Validate.
var ErrInvalid = errors.New("invalid scenario")

func check[T any](decode func(*yaml.Node) (T, error)) func(*yaml.Node) error {
	return func(n *yaml.Node) error {
		_, err := decode(n)
		return err
	}
}

var checkers = map[string]func(*yaml.Node) error{
	TypeScalar: check(decodeScalar),
	TypePoint:  check(decodePoint),
	TypeAffine: check(decodeAffine),
	TypeColor:  check(decodeColor),
	TypeHcl:    check(decodeHcl),
	TypeText:   check(decodeText),
}

// Validate reports every problem in doc and its children at once.
func Validate(doc *Document) error {
	var errs []error

	if !strings.HasPrefix(doc.Version, "1") {
		errs = append(errs, fmt.Errorf("unsupported version %q", doc.Version))
	}
	validateScene(doc, "", timecode.Timestamp(), &errs)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

func validateScene(doc *Document, parent string, parentFr timecode.Framerate, errs *[]error) {
	path := doc.Name
	if parent != "" {
		path = parent + "/" + doc.Name
	}
	fail := func(format string, args ...any) {
		*errs = append(*errs, fmt.Errorf("scene %q: "+format, append([]any{path}, args...)...))
	}

	if doc.Name == "" {
		fail("missing name")
	}

	fr, err := doc.Framerate.Resolve(parentFr)
	if err != nil {
		fail("%v", err)
		fr = parentFr
	}

	if doc.Duration != "" {
		if _, err := timecode.Parse(doc.Duration, fr); err != nil {
			fail("duration: %v", err)
		}
	}

	seen := make(map[string]bool, len(doc.Tracks))
	for i, tr := range doc.Tracks {
		switch {
		case tr.Name == "":
			fail("track %d: missing name", i)
		case seen[tr.Name]:
			fail("track %q: defined twice", tr.Name)
		}
		seen[tr.Name] = true

		checker, ok := checkers[tr.Type]
		if !ok {
			fail("track %q: unknown type %q", tr.Name, tr.Type)
		}
		if _, err := ParseEasing(tr.Easing); err != nil {
			fail("track %q: %v", tr.Name, err)
		}
		if len(tr.Keyframes) == 0 {
			fail("track %q: no keyframes", tr.Name)
		}

		for j, k := range tr.Keyframes {
			if _, err := timecode.Parse(k.At, fr); err != nil {
				fail("track %q keyframe %d: %v", tr.Name, j, err)
			}
			if k.Value.Kind == 0 {
				fail("track %q keyframe %d: missing value", tr.Name, j)
				continue
			}
			if ok {
				if err := checker(&k.Value); err != nil {
					fail("track %q keyframe %d: %v", tr.Name, j, err)
				}
			}
		}
	}

	children := make(map[string]bool, len(doc.Children))
	for i := range doc.Children {
		child := &doc.Children[i]
		if child.Name != "" && children[child.Name] {
			fail("child %q: defined twice", child.Name)
		}
		children[child.Name] = true
		validateScene(child, path, fr, errs)
	}
}
