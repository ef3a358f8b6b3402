// Package imagefetch downloads profile images into memory.
//
// [Client.Fetch] performs a single GET under the caller's context, checks the
// status code, reads the body into memory and decodes the image header to
// learn its pixel size and format. Formats that presentation software does
// not embed reliably (WebP, BMP, TIFF) are transcoded to PNG.
//
// Failures are reported with the sentinel errors [ErrInvalidURL],
// [ErrNotFound], [ErrNetwork] and [ErrDecode]; callers typically log them and
// carry on without the image. Requests are never retried.
//
// Successful downloads are stored in a [cache.Cache] keyed by URL so repeated
// runs over the same input do not hit the network again.
package imagefetch
