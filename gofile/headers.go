package gofile

// defaultHeaders mirrors what a mobile Chromium browser sends to the upload
// endpoint from the gofile.io web page.
var defaultHeaders = map[string]string{
	"Accept":             "*/*",
	"Accept-Language":    "en-GB",
	"Connection":         "keep-alive",
	"Origin":             "https://gofile.io",
	"Referer":            "https://gofile.io/",
	"User-Agent":         "Mozilla/5.0 (Linux; Android 10; K) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Mobile Safari/537.36",
	"sec-ch-ua":          `"Chromium";v="127", "Not)A;Brand";v="99", "Microsoft Edge Simulate";v="127", "Lemur";v="127"`,
	"sec-ch-ua-mobile":   "?1",
	"sec-ch-ua-platform": `"Android"`,
}

// DefaultHeaders returns a fresh copy of the static header set sent with every upload.
func DefaultHeaders() map[string]string {
	out := make(map[string]string, len(defaultHeaders))
	for k, v := range defaultHeaders {
		out[k] = v
	}
	return out
}
