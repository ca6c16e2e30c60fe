package schema

import "fmt"

// Validate checks a decoded JSON value against the schema. Validation is
// structural only: it checks presence of required keys and JSON type
// compatibility, not value constraints.
func (s *Schema) Validate(value any) error {
	return s.validate("$", value)
}

func (s *Schema) validate(path string, value any) error {
	if s == nil || s.Kind == KindAny {
		return nil
	}

	switch s.Kind {
	case KindString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("%s: expected string", path)
		}
	case KindNumber:
		switch value.(type) {
		case float64, float32, int, int64:
		default:
			return fmt.Errorf("%s: expected number", path)
		}
	case KindBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("%s: expected boolean", path)
		}
	case KindArray:
		items, ok := value.([]any)
		if !ok {
			return fmt.Errorf("%s: expected array", path)
		}
		for i, item := range items {
			if err := s.Items.validate(fmt.Sprintf("%s[%d]", path, i), item); err != nil {
				return err
			}
		}
	case KindObject:
		obj, ok := value.(map[string]any)
		if !ok {
			return fmt.Errorf("%s: expected object", path)
		}
		// Open objects accept any content.
		if s.Properties == nil {
			return nil
		}
		for name, prop := range s.Properties {
			child, present := obj[name]
			if !present {
				if prop.Optional {
					continue
				}
				return fmt.Errorf("%s: missing required key %q", path, name)
			}
			if err := prop.validate(path+"."+name, child); err != nil {
				return err
			}
		}
	}

	return nil
}
