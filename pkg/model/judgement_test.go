package model_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/identity-registry/pkg/model"
)

func TestJudgementFromByte(t *testing.T) {
	for b, expected := range []model.Judgement{
		model.JudgementUnknown,
		model.JudgementReasonable,
		model.JudgementKnownGood,
		model.JudgementErroneous,
		model.JudgementLowQuality,
	} {
		judgement, err := model.JudgementFromByte(byte(b))
		require.NoError(t, err)
		require.Equal(t, expected, judgement)
	}

	for _, b := range []byte{5, 6, 100, 255} {
		_, err := model.JudgementFromByte(b)
		require.True(t, ierrors.Is(err, model.ErrInvalidJudgement), "byte %d", b)
	}
}

func TestJudgement_IsSticky(t *testing.T) {
	require.False(t, model.JudgementUnknown.IsSticky())
	require.False(t, model.JudgementReasonable.IsSticky())
	require.True(t, model.JudgementKnownGood.IsSticky())
	require.True(t, model.JudgementErroneous.IsSticky())
	require.False(t, model.JudgementLowQuality.IsSticky())
}
