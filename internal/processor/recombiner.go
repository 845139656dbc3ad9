package processor

// Recombine returns the diagnostics of the original file from a batch
// produced by linting each virtual document of filename.
//
// Index 0 belongs to the original file and is returned unchanged. The host
// engine reports template diagnostics under the synthesized template
// filename itself, so every other entry is dropped. Positions need no
// translation because extraction never rewrites the original text.
func Recombine[D any](batch [][]D, filename string) []D {
	if len(batch) == 0 {
		return nil
	}
	return batch[0]
}
