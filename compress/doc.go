// Package compress provides the codecs used for compressed section files.
//
// Section files are small and written once, so every codec works on whole
// buffers: Compress takes the concatenated binary sections and returns one
// self-describing stream. The streams are the standard container formats of
// each algorithm, so files can also be produced or inspected with the usual
// command line tools:
//
//	Type  | Suffix | Library                                 | Container
//	------|--------|-----------------------------------------|-------------
//	None  |        |                                         | raw sections
//	Zstd  | .zst   | github.com/klauspost/compress/zstd      | zstd frame
//	S2    | .sz    | github.com/klauspost/compress/s2        | s2 stream
//	LZ4   | .lz4   | github.com/pierrec/lz4/v4               | lz4 frame
//
// Codecs are stateless values safe for concurrent use; encoders and decoders
// with internal state are pooled.
//
// Example:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(sections)
package compress
