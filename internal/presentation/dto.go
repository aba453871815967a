package presentation

import (
	"github.com/zjrosen/colortags/internal/colortag"
)

// TagDTO is one color tag as reported by the tokens command.
type TagDTO struct {
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Line     int    `json:"line"`
	Spec     string `json:"spec"`
	Color    string `json:"color,omitempty"`
	Resolved bool   `json:"resolved"`
	Content  string `json:"content"`
}

// ColorsDTO is the persisted color state.
type ColorsDTO struct {
	ConfigPath string   `json:"config_path,omitempty"`
	Vault      []string `json:"vault"`
	Recent     []string `json:"recent"`
}

// FromTagMatches converts tokenizer output for text into DTOs.
// Line numbers are 1-based.
func FromTagMatches(text string, matches []colortag.TagMatch) []TagDTO {
	dtos := make([]TagDTO, 0, len(matches))
	line, scanned := 1, 0
	for _, m := range matches {
		for ; scanned < m.Start; scanned++ {
			if text[scanned] == '\n' {
				line++
			}
		}
		dtos = append(dtos, TagDTO{
			Start:    m.Start,
			End:      m.End,
			Line:     line,
			Spec:     m.Spec,
			Color:    m.Color,
			Resolved: m.HasColor(),
			Content:  m.Content,
		})
	}
	return dtos
}
