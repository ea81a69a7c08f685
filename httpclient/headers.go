package httpclient

// MergeHeaders returns a copy of base with every entry from override
// applied; override wins on conflict. Neither input is mutated.
func MergeHeaders(base, override map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}
