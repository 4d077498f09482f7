package sink

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
)

var (
	colorIndex = color.New(color.FgHiBlack)
	colorField = color.New(color.FgHiBlue)
	colorEmpty = color.New(color.FgHiBlack)
	colorComma = color.New(color.FgHiYellow)
)

// textSink prints one numbered line per record with every field quoted:
//
//	1) "id", "name"
//	2) "7", ""
type textSink struct {
	w     *bufio.Writer
	color bool
	n     int
}

func newTextSink(w io.Writer, useColor bool) *textSink {
	return &textSink{w: bufio.NewWriter(w), color: useColor}
}

func (s *textSink) Write(record []string) error {
	s.n++
	s.print(colorIndex, strconv.Itoa(s.n)+") ")
	for i, field := range record {
		if i > 0 {
			s.print(colorComma, ", ")
		}
		if field == "" {
			s.print(colorEmpty, `""`)
			continue
		}
		s.print(colorField, strconv.Quote(field))
	}
	_, err := s.w.WriteString("\n")
	return err
}

func (s *textSink) print(c *color.Color, text string) {
	if s.color {
		c.Fprint(s.w, text)
		return
	}
	fmt.Fprint(s.w, text)
}

func (s *textSink) Flush() error {
	return s.w.Flush()
}
