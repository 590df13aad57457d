package links

import (
	"crypto/md5" //nolint: gosec
	"encoding/hex"
	"shortener/pkg/domain"
)

// CodeLength is the number of hex characters of a short code.
const CodeLength = 8

// Code derives the short code of URL: the first CodeLength hex characters of
// its MD5 digest. The same URL always yields the same code.
func Code(URL string) domain.ShortCode {
	sum := md5.Sum([]byte(URL)) //nolint: gosec

	return domain.ShortCode(hex.EncodeToString(sum[:])[:CodeLength])
}
