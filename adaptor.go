package http2

import (
	"bytes"
	"strconv"

	"github.com/valyala/fasthttp"
)

// adaptor.go bridges the codec's HeaderField/Headers types to
// valyala/fasthttp's Request/Response. The codec itself has no notion of
// methods, status codes or bodies; this file is caller convenience for
// embedders that already speak fasthttp, not part of the frame codec.

func fasthttpRequestHeaders(hf *HeaderField, req *fasthttp.Request) {
	k, v := hf.KeyBytes(), hf.ValueBytes()

	if !hf.IsPseudo() &&
		!(bytes.Equal(k, StringUserAgent) ||
			bytes.Equal(k, StringContentType)) {
		req.Header.AddBytesKV(k, v)
		return
	}

	if hf.IsPseudo() {
		if bytes.Equal(k, StringPath) {
			req.SetRequestURIBytes(v)
			return
		}

		k = k[1:]
	}

	switch k[0] {
	case 'm': // method
		req.Header.SetMethodBytes(v)
	case 's': // scheme
		req.URI().SetSchemeBytes(v)
	case 'a': // authority
		req.URI().SetHostBytes(v)
		req.Header.AddBytesV("Host", v)
	case 'u': // user-agent
		req.Header.SetUserAgentBytes(v)
	case 'c': // content-type
		req.Header.SetContentTypeBytes(v)
	}
}

func fasthttpResponseHeaders(dst *Headers, hp *HPACK, res *fasthttp.Response) {
	hf := AcquireHeaderField()
	defer ReleaseHeaderField(hf)

	hf.SetKeyBytes(StringStatus)
	hf.SetValue(strconv.FormatInt(int64(res.Header.StatusCode()), 10))
	dst.rawHeaders = hp.AppendHeaderField(dst.rawHeaders, hf, true)

	hf.SetKeyBytes(StringContentLength)
	hf.SetValue(strconv.FormatInt(int64(len(res.Body())), 10))
	dst.rawHeaders = hp.AppendHeaderField(dst.rawHeaders, hf, true)

	res.Header.VisitAll(func(k, v []byte) {
		hf.SetBytes(bytes.ToLower(k), v)
		dst.rawHeaders = hp.AppendHeaderField(dst.rawHeaders, hf, true)
	})
}
