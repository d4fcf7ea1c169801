package util

import (
	"encoding/base64"

	"github.com/seaweedfs/md5stream/weed/md5"
)

func Base64Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func Base64Md5(data []byte) string {
	return Base64Encode(Md5(data))
}

func Md5(data []byte) []byte {
	d := md5.Sum(data)
	return d[:]
}

func Md5String(data []byte) string {
	return md5.Sum(data).String()
}

// Base64Md5ToBytes decodes a Content-MD5 header value. It returns nil unless
// the value decodes to exactly one digest.
func Base64Md5ToBytes(contentMd5 string) []byte {
	data, err := base64.StdEncoding.DecodeString(contentMd5)
	if err != nil || len(data) != md5.Size {
		return nil
	}
	return data
}
