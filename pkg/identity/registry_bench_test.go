package identity_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/identity-registry/pkg/model"
	"github.com/iotaledger/identity-registry/pkg/testsuite"
)

func benchmarkInfo(size int) *model.IdentityInfo {
	return testsuite.Info(string(bytes.Repeat([]byte{'x'}, size)), "", "", "")
}

func BenchmarkSetIdentity(b *testing.B) {
	for _, size := range []int{1, 32, 64} {
		b.Run(fmt.Sprintf("b=%d", size), func(b *testing.B) {
			ts := testsuite.NewTestSuite(b, testsuite.WithGenesisBalance(1_000_000_000))
			defer ts.Shutdown()

			info := benchmarkInfo(size)
			aliases := make([]string, b.N)
			for i := range aliases {
				aliases[i] = fmt.Sprintf("account%d", i)
				ts.Account(aliases[i])
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				require.NoError(b, ts.SetIdentity(aliases[i], info))
			}
		})
	}
}

func BenchmarkSetIdentityUpdate(b *testing.B) {
	for _, judgements := range []int{0, 10, 20} {
		b.Run(fmt.Sprintf("j=%d", judgements), func(b *testing.B) {
			ts := testsuite.NewTestSuite(b, testsuite.WithGenesisBalance(1_000_000_000))
			defer ts.Shutdown()

			require.NoError(b, ts.SetIdentity("alice", benchmarkInfo(32)))
			for id := 0; id < judgements; id++ {
				require.NoError(b, ts.ProvideJudgementInline(model.JudgementID(id), "alice", model.JudgementKnownGood))
			}

			infos := []*model.IdentityInfo{benchmarkInfo(16), benchmarkInfo(32)}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				require.NoError(b, ts.SetIdentity("alice", infos[i%2]))
			}
		})
	}
}

func BenchmarkProvideJudgement(b *testing.B) {
	for _, external := range []bool{false, true} {
		b.Run(fmt.Sprintf("external=%t", external), func(b *testing.B) {
			ts := testsuite.NewTestSuite(b)
			defer ts.Shutdown()

			require.NoError(b, ts.SetIdentity("alice", benchmarkInfo(32)))
			maxJudgements := ts.Parameters().MaxJudgements

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				require.NoError(b, ts.ProvideJudgement(external, model.JudgementID(uint32(i)%maxJudgements), "alice", model.JudgementReasonable))
			}
		})
	}
}

func BenchmarkClearIdentity(b *testing.B) {
	for _, external := range []bool{false, true} {
		b.Run(fmt.Sprintf("external=%t", external), func(b *testing.B) {
			ts := testsuite.NewTestSuite(b, testsuite.WithGenesisBalance(1_000_000_000))
			defer ts.Shutdown()

			maxJudgements := model.JudgementID(ts.Parameters().MaxJudgements)
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				require.NoError(b, ts.SetIdentity("alice", benchmarkInfo(32)))
				for id := model.JudgementID(0); id < maxJudgements; id++ {
					require.NoError(b, ts.ProvideJudgement(external, id, "alice", model.JudgementKnownGood))
				}
				b.StartTimer()

				_, err := ts.ClearIdentity("alice")
				require.NoError(b, err)
			}
		})
	}
}
