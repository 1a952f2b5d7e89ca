package reconstruct

import (
	"path/filepath"
	"strconv"
	"strings"
)

// OutputPath returns the sibling of input with "_speaker_<id>" appended to the
// file stem: /a/rec.wav becomes /a/rec_speaker_3.wav. A leading or trailing
// dot does not start an extension, so /a/.wav becomes /a/.wav_speaker_3.
func OutputPath(input string, speaker int) string {
	dir, base := filepath.Split(input)
	stem, ext := splitExt(base)
	return filepath.Join(dir, stem+"_speaker_"+strconv.Itoa(speaker)+ext)
}

func splitExt(base string) (stem, ext string) {
	i := strings.LastIndexByte(base, '.')
	if i <= 0 || i == len(base)-1 {
		return base, ""
	}
	return base[:i], base[i:]
}
