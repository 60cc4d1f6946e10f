package cli

import (
	"fenview/src/base"
	"fenview/ui/gui/tools/lang"
	"fmt"
)

// FormatInfo renders the metadata line shown under the board.
func FormatInfo(pos base.Position, lw *lang.GUILangWorker) string {
	color := lw.T("color.white")
	if pos.ActiveColor == base.Black {
		color = lw.T("color.black")
	}
	return fmt.Sprintf("%s: %s   %s: %s   %s: %s   %s: %d   %s: %d",
		lw.T("info.turn"), color,
		lw.T("info.castling"), pos.Castling,
		lw.T("info.enpassant"), pos.EnPassant,
		lw.T("info.halfmove"), pos.Halfmove,
		lw.T("info.fullmove"), pos.Fullmove,
	)
}
