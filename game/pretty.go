package game

import (
	"fmt"
	"strings"
)

const (
	borderLine = "|===============|"
	legendLine = "| 0 1 2 3 4 5 6 |"
	lineWidth  = len(borderLine)
	textLines  = Rows + 3
)

var symbols = map[Piece]byte{Empty: ' ', Player1: 'x', Player2: 'o'}

// String renders the board for diagnostics with row 0 printed last:
//
//	|===============|
//	|               |
//	...
//	| x o           |
//	|===============|
//	| 0 1 2 3 4 5 6 |
func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString(borderLine)
	for row := Rows - 1; row >= 0; row-- {
		sb.WriteString("\n|")
		for col := 0; col < Cols; col++ {
			sb.WriteByte(' ')
			sb.WriteByte(symbols[b[row][col]])
		}
		sb.WriteString(" |")
	}
	sb.WriteString("\n" + borderLine)
	sb.WriteString("\n" + legendLine)
	return sb.String()
}

// ParseBoard reads back the output of Board.String. Surrounding newlines are ignored.
func ParseBoard(s string) (Board, error) {
	var b Board
	lines := strings.Split(strings.Trim(strings.ReplaceAll(s, "\r\n", "\n"), "\n"), "\n")
	if len(lines) != textLines {
		return b, fmt.Errorf("%w: expected %d lines, got %d", ErrInvalidBoard, textLines, len(lines))
	}
	for i, line := range lines {
		if len(line) != lineWidth {
			return b, fmt.Errorf("%w: line %d has width %d, expected %d", ErrInvalidBoard, i, len(line), lineWidth)
		}
	}
	if lines[0] != borderLine || lines[Rows+1] != borderLine {
		return b, fmt.Errorf("%w: missing border", ErrInvalidBoard)
	}
	if lines[Rows+2] != legendLine {
		return b, fmt.Errorf("%w: missing column legend", ErrInvalidBoard)
	}

	for i := 1; i <= Rows; i++ {
		line := lines[i]
		if line[0] != '|' || line[lineWidth-1] != '|' {
			return b, fmt.Errorf("%w: line %d is not framed", ErrInvalidBoard, i)
		}
		row := Rows - i
		for pos := 1; pos < lineWidth-1; pos++ {
			if pos%2 == 1 {
				if line[pos] != ' ' {
					return b, fmt.Errorf("%w: unexpected %q at line %d column %d", ErrInvalidBoard, line[pos], i, pos)
				}
				continue
			}
			piece, ok := pieceFor(line[pos])
			if !ok {
				return b, fmt.Errorf("%w: unknown symbol %q at line %d column %d", ErrInvalidBoard, line[pos], i, pos)
			}
			b[row][(pos-2)/2] = piece
		}
	}

	if !b.isSettled() {
		return b, fmt.Errorf("%w: floating piece", ErrInvalidBoard)
	}
	return b, nil
}

func pieceFor(symbol byte) (Piece, bool) {
	for piece, s := range symbols {
		if s == symbol {
			return piece, true
		}
	}
	return Empty, false
}
