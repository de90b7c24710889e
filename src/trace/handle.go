package trace

import "strings"

// ImageUUID extracts the backend image/subvolume UUID from a CSI volume
// handle. Handles are dash-delimited and end in the five UUID tokens.
// Handles with fewer than nine tokens are not produced by the driver;
// they yield the empty string and are treated as unknown, not an error.
func ImageUUID(handle string) string {
	tokens := strings.Split(handle, "-")
	if len(tokens) < 9 {
		return ""
	}
	return strings.Join(tokens[len(tokens)-5:], "-")
}

// poolIDToken picks the handle token carrying the numeric pool id.
// Handles embed the cluster namespace between fixed-width prefix tokens;
// when token 3 is still part of the rook namespace the pool id sits one
// position further right. The substring heuristic mirrors what the
// driver encodes today and misfires on handles from other conventions.
func poolIDToken(handle, rookNamespace string) (string, bool) {
	tokens := strings.Split(handle, "-")
	if len(tokens) < 4 {
		return "", false
	}
	if strings.Contains(rookNamespace, tokens[3]) {
		if len(tokens) < 5 {
			return "", false
		}
		return tokens[4], true
	}
	return tokens[3], true
}
