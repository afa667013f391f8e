// Package twic finds, downloads and unpacks the weekly The Week in Chess archive
//
// Design choices:
// - The index page is scanned as raw text first; the archive link pattern is the
//   contract, the surrounding HTML is not.
// - When the raw scan misses, anchors are parsed with goquery and relative hrefs
//   are resolved against the index URL.
// - Downloads and extracted files land through a temp file and rename so a failed
//   run never leaves a truncated artifact at the fixed path.
// - Nothing here retries. Callers decide whether a failure is worth another run.
package twic
