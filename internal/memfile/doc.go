// Package memfile quantizes RGB pixels to fixed-width integer words and
// renders them as memory-initialization text: one binary or hexadecimal
// token per line, suitable for $readmemb and $readmemh.
//
// # Pixel Formats
//
//   - RGB565 (16 bits): R[7:3] G[7:2] B[7:3], packed MSB-first
//   - RGB332 (8 bits): R[7:5] G[7:5] B[7:6], packed MSB-first
//   - GREY4 (4 bits): high nibble of the BT.601 luma
//   - BIN1 (1 bit): 1 when luma >= threshold, else 0
//
// Channel packing truncates; it never rounds to the nearest level. Luma is
// computed in integer arithmetic as (299R + 587G + 114B + 500) / 1000, which
// is round-half-up of the exact weighted sum.
//
// # Token Widths
//
// Binary tokens are exactly Bits() characters. Hex tokens are uppercase and
// max(1, ceil(Bits()/4)) characters: 4, 2, 1 and 1 digits for the four
// formats.
package memfile
