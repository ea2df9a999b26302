package types

// EditInfo describes a single contiguous buffer mutation in both byte-offset
// and position terms. Byte indices address the flattened buffer content
// (lines joined by '\n').
type EditInfo struct {
	StartIndex     uint32   // Start byte of the edit
	OldEndIndex    uint32   // End byte of the old text
	NewEndIndex    uint32   // End byte of the new text
	StartPosition  Position // Where the edit began
	OldEndPosition Position // End position of the replaced text
	NewEndPosition Position // End position of the inserted text
}
