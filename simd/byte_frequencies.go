package simd

// byteFrequencies ranks bytes by how common they are in the structured text
// the glob engine searches: source code, English text and list forms.
// Lower rank = rarer byte (better anchor for Memmem).
//
// The list-form delimiters '(', ')' and ';' and the space separator are
// ranked as very common since nearly every list element is surrounded by them.
var byteFrequencies = [256]byte{
	// 0x00-0x1F: control characters; tab, LF and CR are moderately common
	0, 0, 0, 0, 0, 0, 0, 0, 0, 90, 120, 0, 0, 60, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	// 0x20-0x2F: ' ' ! " # $ % & ' ( ) * + , - . /
	255, 60, 140, 50, 40, 35, 30, 160, 235, 235, 80, 55, 200, 140, 210, 100,
	// 0x30-0x3F: 0-9 : ; < = > ?
	180, 190, 170, 150, 140, 140, 130, 120, 120, 120, 150, 230, 70, 160, 70, 50,
	// 0x40-0x4F: @ A-O
	25, 120, 80, 90, 85, 130, 75, 70, 80, 115, 30, 35, 90, 85, 100, 105,
	// 0x50-0x5F: P-Z [ \ ] ^ _
	80, 15, 100, 110, 115, 70, 45, 55, 20, 50, 10, 90, 60, 90, 20, 110,
	// 0x60-0x6F: ` a-o
	30, 225, 140, 170, 165, 245, 135, 130, 150, 200, 25, 65, 175, 155, 195, 205,
	// 0x70-0x7F: p-z { | } ~ DEL
	145, 15, 195, 200, 215, 150, 75, 95, 45, 120, 20, 85, 40, 85, 15, 0,
	// 0x80-0xFF: UTF-8 lead and continuation bytes
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
}

// ByteRank returns the frequency rank of a byte.
// Lower values indicate rarer bytes.
func ByteRank(b byte) byte {
	return byteFrequencies[b]
}

// selectRareByte returns the rarest byte in needle and its index.
// Ties keep the earliest position. Returns (0, -1) for an empty needle.
func selectRareByte(needle []byte) (rareByte byte, index int) {
	if len(needle) == 0 {
		return 0, -1
	}
	rareByte, index = needle[0], 0
	minRank := byteFrequencies[rareByte]
	for i := 1; i < len(needle); i++ {
		if rank := byteFrequencies[needle[i]]; rank < minRank {
			rareByte, index, minRank = needle[i], i, rank
		}
	}
	return rareByte, index
}
