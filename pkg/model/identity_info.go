package model

import (
	"io"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/serializer/v2"
	"github.com/iotaledger/hive.go/serializer/v2/stream"
)

// MaxFieldLengthLimit is the largest field length that fits the one byte length prefix of the encoding.
const MaxFieldLengthLimit = 255

// IdentityInfo holds the self-declared information of an account.
type IdentityInfo struct {
	Display []byte `json:"display,omitempty"`
	Legal   []byte `json:"legal,omitempty"`
	Web     []byte `json:"web,omitempty"`
	Email   []byte `json:"email,omitempty"`
}

func (i *IdentityInfo) fields() [4]*[]byte {
	return [4]*[]byte{&i.Display, &i.Legal, &i.Web, &i.Email}
}

var fieldNames = [4]string{"display", "legal", "web", "email"}

// Validate checks that none of the fields exceeds maxFieldLength bytes.
func (i *IdentityInfo) Validate(maxFieldLength int) error {
	if maxFieldLength > MaxFieldLengthLimit {
		maxFieldLength = MaxFieldLengthLimit
	}

	for idx, field := range i.fields() {
		if len(*field) > maxFieldLength {
			return ierrors.WithMessagef(ErrFieldTooLong, "%s has %d bytes, at most %d are allowed", fieldNames[idx], len(*field), maxFieldLength)
		}
	}

	return nil
}

// EncodedSize returns the number of bytes the info occupies in storage, which is what deposits are priced on.
func (i *IdentityInfo) EncodedSize() int {
	size := 0
	for _, field := range i.fields() {
		size += serializer.OneByte + len(*field)
	}

	return size
}

// Clone returns a deep copy of the info.
func (i *IdentityInfo) Clone() *IdentityInfo {
	clone := &IdentityInfo{}
	cloneFields := clone.fields()
	for idx, field := range i.fields() {
		if *field != nil {
			*cloneFields[idx] = append(make([]byte, 0, len(*field)), *field...)
		}
	}

	return clone
}

func (i *IdentityInfo) Bytes() ([]byte, error) {
	byteBuffer := stream.NewByteBuffer(i.EncodedSize())

	if err := i.Export(byteBuffer); err != nil {
		return nil, err
	}

	return byteBuffer.Bytes()
}

func (i *IdentityInfo) Export(writer io.WriteSeeker) error {
	for idx, field := range i.fields() {
		if len(*field) > MaxFieldLengthLimit {
			return ierrors.WithMessagef(ErrFieldTooLong, "failed to write %s", fieldNames[idx])
		}

		if err := stream.WriteBytesWithSize(writer, *field, serializer.SeriLengthPrefixTypeAsByte); err != nil {
			return ierrors.Wrapf(err, "failed to write %s", fieldNames[idx])
		}
	}

	return nil
}

func IdentityInfoFromBytes(bytes []byte) (*IdentityInfo, int, error) {
	byteReader := stream.NewByteReader(bytes)

	info, err := IdentityInfoFromReader(byteReader)
	if err != nil {
		return nil, 0, ierrors.Wrap(err, "failed to parse IdentityInfo")
	}

	return info, byteReader.BytesRead(), nil
}

func IdentityInfoFromReader(reader io.ReadSeeker) (*IdentityInfo, error) {
	info := &IdentityInfo{}

	var err error
	for idx, field := range info.fields() {
		if *field, err = stream.ReadBytesWithSize(reader, serializer.SeriLengthPrefixTypeAsByte); err != nil {
			return nil, ierrors.Wrapf(err, "failed to read %s", fieldNames[idx])
		}

		if len(*field) == 0 {
			*field = nil
		}
	}

	return info, nil
}
