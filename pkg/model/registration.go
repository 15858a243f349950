package model

import (
	"io"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/serializer/v2/stream"
	"github.com/iotaledger/hive.go/stringify"
	iotago "github.com/iotaledger/iota.go/v4"
)

// Registration is the identity record of an account.
type Registration struct {
	// Info is the identity information the account declared about itself.
	Info *IdentityInfo `json:"info"`
	// Judgements are the judgements stored inline with the record.
	Judgements Judgements `json:"judgements"`
	// ExternalCount is the number of judgements stored for the account outside of the record.
	ExternalCount uint32 `json:"externalCount"`
	// Deposit is the amount held in reserve for the record.
	Deposit iotago.BaseToken `json:"deposit"`
}

func NewRegistration() *Registration {
	return &Registration{
		Info: &IdentityInfo{},
	}
}

func (r *Registration) Clone() *Registration {
	return &Registration{
		Info:          r.Info.Clone(),
		Judgements:    r.Judgements.Clone(),
		ExternalCount: r.ExternalCount,
		Deposit:       r.Deposit,
	}
}

func RegistrationFromBytes(bytes []byte) (*Registration, int, error) {
	byteReader := stream.NewByteReader(bytes)

	r, err := RegistrationFromReader(byteReader)
	if err != nil {
		return nil, 0, ierrors.Wrap(err, "failed to parse Registration")
	}

	return r, byteReader.BytesRead(), nil
}

func RegistrationFromReader(reader io.ReadSeeker) (*Registration, error) {
	var err error
	r := NewRegistration()

	if r.Info, err = IdentityInfoFromReader(reader); err != nil {
		return nil, ierrors.Wrap(err, "failed to read Info")
	}
	if r.Judgements, err = JudgementsFromReader(reader); err != nil {
		return nil, ierrors.Wrap(err, "failed to read Judgements")
	}
	if r.ExternalCount, err = stream.Read[uint32](reader); err != nil {
		return nil, ierrors.Wrap(err, "failed to read ExternalCount")
	}
	if r.Deposit, err = stream.Read[iotago.BaseToken](reader); err != nil {
		return nil, ierrors.Wrap(err, "failed to read Deposit")
	}

	return r, nil
}

func (r *Registration) Bytes() ([]byte, error) {
	byteBuffer := stream.NewByteBuffer()

	if err := r.Export(byteBuffer); err != nil {
		return nil, err
	}

	return byteBuffer.Bytes()
}

func (r *Registration) Export(writer io.WriteSeeker) error {
	if err := r.Info.Export(writer); err != nil {
		return ierrors.Wrap(err, "failed to write Info")
	}
	if err := r.Judgements.Export(writer); err != nil {
		return ierrors.Wrap(err, "failed to write Judgements")
	}
	if err := stream.Write(writer, r.ExternalCount); err != nil {
		return ierrors.Wrap(err, "failed to write ExternalCount")
	}
	if err := stream.Write(writer, r.Deposit); err != nil {
		return ierrors.Wrap(err, "failed to write Deposit")
	}

	return nil
}

func (r *Registration) String() string {
	return stringify.Struct("Registration",
		stringify.NewStructField("Info", r.Info),
		stringify.NewStructField("Judgements", r.Judgements),
		stringify.NewStructField("ExternalCount", r.ExternalCount),
		stringify.NewStructField("Deposit", r.Deposit),
	)
}
