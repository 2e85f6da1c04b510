// Package transcode converts a single PNG source into a size-constrained JPEG.
//
// The conversion bounds image dimensions, flattens alpha, and then walks JPEG
// quality downward from a starting level until the encoded file fits the byte
// budget or the quality floor is passed. Decode and encode failures are
// captured in the returned Outcome rather than propagated, so one bad file
// never aborts a batch.
package transcode
