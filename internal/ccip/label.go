package ccip

// ValidateLabel enforces the normalized ENS-safe label form the registrar hashes on chain:
// lowercase ASCII letters, digits and '-', no leading or trailing hyphen, and no "--"
// in the third and fourth position (reserved for punycode style labels).
func ValidateLabel(label string, minLen, maxLen int) error {
	if label == "" {
		return validationErr("label must not be empty")
	}
	if len(label) < minLen || len(label) > maxLen {
		return validationErr("label length must be between %d and %d", minLen, maxLen)
	}

	for i := 0; i < len(label); i++ {
		c := label[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		case c == '-':
		case c >= 'A' && c <= 'Z':
			return validationErr("label must be lowercase")
		default:
			return validationErr("label contains unsupported character at position %d", i)
		}
	}

	if label[0] == '-' || label[len(label)-1] == '-' {
		return validationErr("label must not start or end with a hyphen")
	}
	if len(label) >= 4 && label[2] == '-' && label[3] == '-' {
		return validationErr("label must not contain '--' in the third and fourth position")
	}

	return nil
}
