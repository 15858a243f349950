package model

import (
	"io"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/serializer/v2/stream"
	"github.com/iotaledger/hive.go/stringify"
	iotago "github.com/iotaledger/iota.go/v4"
)

// Parameters are the economic and size limits a registry operates with.
type Parameters struct {
	// BasicDeposit is the amount held on deposit for a registered identity.
	BasicDeposit iotago.BaseToken `json:"basicDeposit"`
	// ByteDeposit is the amount held on deposit per encoded byte of identity information.
	ByteDeposit iotago.BaseToken `json:"byteDeposit"`
	// MaxJudgements is the maximum number of judgements an account can hold on each storage path.
	MaxJudgements uint32 `json:"maxJudgements"`
	// MaxFieldLength is the maximum length of a single identity field.
	MaxFieldLength uint8 `json:"maxFieldLength"`
}

func (p *Parameters) Validate() error {
	if p.MaxJudgements == 0 {
		return ierrors.New("maxJudgements must be greater than zero")
	}
	if p.MaxJudgements > MaxJudgementsLimit {
		return ierrors.Errorf("maxJudgements must not exceed %d", MaxJudgementsLimit)
	}

	return nil
}

// MaxJudgementsLimit is the largest number of inline judgements the record encoding can hold.
const MaxJudgementsLimit = 1<<16 - 1

func ParametersFromBytes(bytes []byte) (*Parameters, int, error) {
	byteReader := stream.NewByteReader(bytes)

	p, err := ParametersFromReader(byteReader)
	if err != nil {
		return nil, 0, ierrors.Wrap(err, "failed to parse Parameters")
	}

	return p, byteReader.BytesRead(), nil
}

func ParametersFromReader(reader io.ReadSeeker) (*Parameters, error) {
	var err error
	p := new(Parameters)

	if p.BasicDeposit, err = stream.Read[iotago.BaseToken](reader); err != nil {
		return nil, ierrors.Wrap(err, "failed to read BasicDeposit")
	}
	if p.ByteDeposit, err = stream.Read[iotago.BaseToken](reader); err != nil {
		return nil, ierrors.Wrap(err, "failed to read ByteDeposit")
	}
	if p.MaxJudgements, err = stream.Read[uint32](reader); err != nil {
		return nil, ierrors.Wrap(err, "failed to read MaxJudgements")
	}
	if p.MaxFieldLength, err = stream.Read[uint8](reader); err != nil {
		return nil, ierrors.Wrap(err, "failed to read MaxFieldLength")
	}

	return p, nil
}

func (p *Parameters) Bytes() ([]byte, error) {
	byteBuffer := stream.NewByteBuffer()

	if err := p.Export(byteBuffer); err != nil {
		return nil, err
	}

	return byteBuffer.Bytes()
}

func (p *Parameters) Export(writer io.WriteSeeker) error {
	if err := stream.Write(writer, p.BasicDeposit); err != nil {
		return ierrors.Wrap(err, "failed to write BasicDeposit")
	}
	if err := stream.Write(writer, p.ByteDeposit); err != nil {
		return ierrors.Wrap(err, "failed to write ByteDeposit")
	}
	if err := stream.Write(writer, p.MaxJudgements); err != nil {
		return ierrors.Wrap(err, "failed to write MaxJudgements")
	}
	if err := stream.Write(writer, p.MaxFieldLength); err != nil {
		return ierrors.Wrap(err, "failed to write MaxFieldLength")
	}

	return nil
}

func (p *Parameters) String() string {
	return stringify.Struct("Parameters",
		stringify.NewStructField("BasicDeposit", p.BasicDeposit),
		stringify.NewStructField("ByteDeposit", p.ByteDeposit),
		stringify.NewStructField("MaxJudgements", p.MaxJudgements),
		stringify.NewStructField("MaxFieldLength", p.MaxFieldLength),
	)
}
