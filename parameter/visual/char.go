package visual

// QuadrantChars provides 2x2 sub-cell resolution for filament strokes
// Bitmap encoding: bit0=UL, bit1=UR, bit2=LL, bit3=LR
// Layout: [UL][UR]
//
//	[LL][LR]
var QuadrantChars = [16]rune{
	' ', // 0000 - empty
	'▘', // 0001 - upper-left
	'▝', // 0010 - upper-right
	'▀', // 0011 - upper half
	'▖', // 0100 - lower-left
	'▌', // 0101 - left half
	'▞', // 0110 - anti-diagonal
	'▛', // 0111 - UL + UR + LL
	'▗', // 1000 - lower-right
	'▚', // 1001 - diagonal
	'▐', // 1010 - right half
	'▜', // 1011 - UL + UR + LR
	'▄', // 1100 - lower half
	'▙', // 1101 - UL + LL + LR
	'▟', // 1110 - UR + LL + LR
	'█', // 1111 - full block
}

// ArrowChars are endpoint marker glyphs by octant
// Indexed by round(atan2(dy, dx) / 45°) & 7 with screen y increasing downward
var ArrowChars = [8]rune{
	'→', // 0: +x
	'↘', // 1: +x +y
	'↓', // 2: +y
	'↙', // 3: -x +y
	'←', // 4: -x
	'↖', // 5: -x -y
	'↑', // 6: -y
	'↗', // 7: +x -y
}
