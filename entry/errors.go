package entry

import "fmt"

// ErrorCode is a single tagged-variant type enumerating every failure
// reachable from Encode, Decode, Publish, and Verify, plus the subset that
// only a store layer built on top of this package can raise (the
// AddEntry* family, carried over from the original FFI error union so a
// store adapter has a name for every failure it needs to report).
type ErrorCode int

const (
	NoError ErrorCode = iota

	// Encode errors.
	EncodeIsEndOfFeedError
	EncodePayloadHashError
	EncodePayloadSizeError
	EncodeAuthorError
	EncodeSeqError
	EncodeLogIdError
	EncodeBacklinkError
	EncodeLipmaaError
	EncodeSigError
	EncodeEntryHasBacklinksWhenSeqZero
	EncodeBufferLength

	// Decode errors.
	DecodeIsEndOfFeedError
	DecodePayloadHashError
	DecodePayloadSizeError
	DecodeLogIdError
	DecodeAuthorError
	DecodeSeqError
	DecodeSeqIsZero
	DecodeBacklinkError
	DecodeLipmaaError
	DecodeSigError
	DecodeInputIsLengthZero

	// Publish errors.
	PublishAfterEndOfFeed
	PublishWithIncorrectLogId
	PublishWithoutSecretKey
	PublishWithoutKeypair
	PublishWithoutLipmaaEntry
	PublishWithoutBacklinkEntry
	PublishAuthorMismatch

	// Verify errors.
	InvalidSignature
	PayloadHashDidNotMatch
	PayloadLengthDidNotMatch
	BacklinkHashDoesNotMatch
	LipmaalinkHashDoesNotMatch
	VerifyPublishedAfterEndOfFeedError
	VerifyAuthorDidNotMatchBacklink
	VerifyLogIdDidNotMatchBacklink
	VerifyAuthorDidNotMatchLipmaalink
	VerifyLogIdDidNotMatchLipmaalink

	// Store-layer errors: unreachable from this package's own Encode,
	// Decode, Publish, and Verify; reserved for a store adapter built on
	// top of it (see internal/store), matching the original FFI's
	// AddEntry* family.
	AddEntryDecodeFailed
	AddEntryPayloadLengthDidNotMatch
	AddEntryLipmaaHashDidNotMatch
	AddEntryPayloadHashDidNotMatch
	AddEntryBacklinkHashDidNotMatch
	AddEntryGetBacklinkError
	AddEntryGetLipmaalinkError
	AddEntryNoLipmaalinkInStore
	AddEntryDecodeLipmaalinkFromStore
	AddEntryAuthorDidNotMatchLipmaaEntry
	AddEntryLogIdDidNotMatchLipmaaEntry
	AddEntryAuthorDidNotMatchPreviousEntry
	AddEntryLogIdDidNotMatchPreviousEntry
	AddEntryGetLastEntryError
	AddEntryGetLastEntryNotFound
	AddEntryDecodeLastEntry
	AddEntryToFeedThatHasEnded
	AddEntryWithInvalidSignature
)

var errorCodeNames = map[ErrorCode]string{
	NoError:                                "no error",
	EncodeIsEndOfFeedError:                 "encode is_end_of_feed",
	EncodePayloadHashError:                 "encode payload hash",
	EncodePayloadSizeError:                 "encode payload length",
	EncodeAuthorError:                      "encode author",
	EncodeSeqError:                         "encode seq num",
	EncodeLogIdError:                       "encode log id",
	EncodeBacklinkError:                    "encode backlink",
	EncodeLipmaaError:                      "encode lipmaa link",
	EncodeSigError:                         "encode signature",
	EncodeEntryHasBacklinksWhenSeqZero:     "entry has links but seq num is zero",
	EncodeBufferLength:                     "output buffer too small",
	DecodeIsEndOfFeedError:                 "decode is_end_of_feed",
	DecodePayloadHashError:                 "decode payload hash",
	DecodePayloadSizeError:                 "decode payload length",
	DecodeLogIdError:                       "decode log id",
	DecodeAuthorError:                      "decode author",
	DecodeSeqError:                         "decode seq num",
	DecodeSeqIsZero:                        "seq num is zero",
	DecodeBacklinkError:                    "decode backlink",
	DecodeLipmaaError:                      "decode lipmaa link",
	DecodeSigError:                         "decode signature",
	DecodeInputIsLengthZero:                "input is empty",
	PublishAfterEndOfFeed:                  "publish after end of feed",
	PublishWithIncorrectLogId:              "publish with incorrect log id",
	PublishWithoutSecretKey:                "publish without secret key",
	PublishWithoutKeypair:                  "publish without keypair",
	PublishWithoutLipmaaEntry:              "publish without lipmaa link entry bytes",
	PublishWithoutBacklinkEntry:            "publish without backlink entry bytes",
	PublishAuthorMismatch:                  "publish author does not match backlink entry's author",
	InvalidSignature:                       "invalid signature",
	PayloadHashDidNotMatch:                 "payload hash did not match",
	PayloadLengthDidNotMatch:               "payload length did not match",
	BacklinkHashDoesNotMatch:               "backlink hash does not match",
	LipmaalinkHashDoesNotMatch:             "lipmaa link hash does not match",
	VerifyPublishedAfterEndOfFeedError:     "backlink entry published after end of feed",
	VerifyAuthorDidNotMatchBacklink:        "author did not match backlink entry",
	VerifyLogIdDidNotMatchBacklink:         "log id did not match backlink entry",
	VerifyAuthorDidNotMatchLipmaalink:      "author did not match lipmaa link entry",
	VerifyLogIdDidNotMatchLipmaalink:       "log id did not match lipmaa link entry",
	AddEntryDecodeFailed:                   "store: decode failed",
	AddEntryPayloadLengthDidNotMatch:       "store: payload length did not match",
	AddEntryLipmaaHashDidNotMatch:          "store: lipmaa hash did not match",
	AddEntryPayloadHashDidNotMatch:         "store: payload hash did not match",
	AddEntryBacklinkHashDidNotMatch:        "store: backlink hash did not match",
	AddEntryGetBacklinkError:               "store: failed to get backlink entry",
	AddEntryGetLipmaalinkError:             "store: failed to get lipmaa link entry",
	AddEntryNoLipmaalinkInStore:            "store: lipmaa link entry not found",
	AddEntryDecodeLipmaalinkFromStore:      "store: failed to decode lipmaa link entry",
	AddEntryAuthorDidNotMatchLipmaaEntry:   "store: author did not match lipmaa link entry",
	AddEntryLogIdDidNotMatchLipmaaEntry:    "store: log id did not match lipmaa link entry",
	AddEntryAuthorDidNotMatchPreviousEntry: "store: author did not match previous entry",
	AddEntryLogIdDidNotMatchPreviousEntry:  "store: log id did not match previous entry",
	AddEntryGetLastEntryError:              "store: failed to get last entry",
	AddEntryGetLastEntryNotFound:           "store: last entry not found",
	AddEntryDecodeLastEntry:                "store: failed to decode last entry",
	AddEntryToFeedThatHasEnded:             "store: append to feed that has ended",
	AddEntryWithInvalidSignature:           "store: entry has an invalid signature",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// Error is the error type returned by every fallible operation in this
// package. It always carries a Code, and, when the failure originated in a
// sub-codec (varu64, yamf), the wrapped Err so the origin is never lost.
type Error struct {
	Code ErrorCode
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bamboo: %s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("bamboo: %s", e.Code)
}

// Unwrap allows errors.Is/errors.As to see through to the underlying
// sub-codec error, when there is one.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same Code, so callers can
// write errors.Is(err, entry.CodeError(entry.PayloadHashDidNotMatch)).
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Err == nil && other.Code == e.Code
}

// CodeError constructs a bare *Error carrying only a code, useful with
// errors.Is.
func CodeError(code ErrorCode) *Error {
	return &Error{Code: code}
}

func wrapErr(code ErrorCode, err error) *Error {
	return &Error{Code: code, Err: err}
}
