package model

import (
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/serializer/v2"
)

// Judgement is the opinion a registrar holds about the identity information of an account.
type Judgement uint8

const (
	// JudgementUnknown means that no judgement has been made yet.
	JudgementUnknown Judgement = iota
	// JudgementReasonable means that the data appears reasonable, but no in-depth checks were done.
	JudgementReasonable
	// JudgementKnownGood means that the registrar has certified the information as correct.
	JudgementKnownGood
	// JudgementErroneous means that the registrar has found the information to be wrong.
	JudgementErroneous
	// JudgementLowQuality means that the information is of poor quality.
	JudgementLowQuality
)

// JudgementSize is the serialized size of a Judgement.
const JudgementSize = serializer.OneByte

var judgementNames = [...]string{
	JudgementUnknown:    "Unknown",
	JudgementReasonable: "Reasonable",
	JudgementKnownGood:  "KnownGood",
	JudgementErroneous:  "Erroneous",
	JudgementLowQuality: "LowQuality",
}

// JudgementFromByte decodes a Judgement and rejects values outside of the known variants.
func JudgementFromByte(b byte) (Judgement, error) {
	if int(b) >= len(judgementNames) {
		return JudgementUnknown, ierrors.WithMessagef(ErrInvalidJudgement, "unknown judgement %d", b)
	}

	return Judgement(b), nil
}

// JudgementFromBytes is the kvstore.BytesToObject of a Judgement.
func JudgementFromBytes(bytes []byte) (Judgement, int, error) {
	if len(bytes) < JudgementSize {
		return JudgementUnknown, 0, ierrors.Errorf("not enough bytes to decode judgement: %d", len(bytes))
	}

	judgement, err := JudgementFromByte(bytes[0])
	if err != nil {
		return JudgementUnknown, 0, err
	}

	return judgement, JudgementSize, nil
}

// Bytes is the kvstore.ObjectToBytes of a Judgement.
func (j Judgement) Bytes() ([]byte, error) {
	return []byte{byte(j)}, nil
}

// IsSticky returns true if the Judgement can not be replaced once it was given.
func (j Judgement) IsSticky() bool {
	return j == JudgementKnownGood || j == JudgementErroneous
}

func (j Judgement) String() string {
	if int(j) < len(judgementNames) {
		return judgementNames[j]
	}

	return "Invalid"
}
