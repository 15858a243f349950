package model

import (
	"cmp"
	"encoding/binary"
	"io"
	"slices"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/lo"
	"github.com/iotaledger/hive.go/serializer/v2"
	"github.com/iotaledger/hive.go/serializer/v2/stream"
)

// JudgementID identifies the registrar slot a judgement was given under.
type JudgementID uint32

const JudgementIDLength = serializer.UInt32ByteSize

// Bytes encodes the id big endian so that keys sort by id.
func (id JudgementID) Bytes() ([]byte, error) {
	return binary.BigEndian.AppendUint32(make([]byte, 0, JudgementIDLength), uint32(id)), nil
}

func (id JudgementID) MustBytes() []byte {
	return lo.PanicOnErr(id.Bytes())
}

func JudgementIDFromBytes(bytes []byte) (JudgementID, int, error) {
	if len(bytes) < JudgementIDLength {
		return 0, 0, ierrors.Errorf("not enough bytes to decode judgement id: %d", len(bytes))
	}

	return JudgementID(binary.BigEndian.Uint32(bytes)), JudgementIDLength, nil
}

// JudgementEntry is a single judgement stored inline in a Registration.
type JudgementEntry struct {
	ID        JudgementID `json:"id"`
	Judgement Judgement   `json:"judgement"`
}

// Judgements is a bounded list of judgements that is kept strictly ordered by id.
type Judgements []JudgementEntry

func (j Judgements) search(id JudgementID) (int, bool) {
	return slices.BinarySearchFunc(j, id, func(entry JudgementEntry, target JudgementID) int {
		return cmp.Compare(entry.ID, target)
	})
}

// Get returns the judgement stored under the given id.
func (j Judgements) Get(id JudgementID) (judgement Judgement, exists bool) {
	if idx, found := j.search(id); found {
		return j[idx].Judgement, true
	}

	return JudgementUnknown, false
}

// InsertOrReplace sets the judgement for the given id while keeping the list sorted. Sticky judgements can not be
// replaced and new ids are rejected once maxJudgements entries are stored. The list is left untouched on error.
func (j *Judgements) InsertOrReplace(id JudgementID, judgement Judgement, maxJudgements int) error {
	idx, found := j.search(id)
	if found {
		if existing := (*j)[idx].Judgement; existing.IsSticky() {
			return ierrors.WithMessagef(ErrStickyJudgement, "judgement %d is %s", id, existing)
		}

		(*j)[idx].Judgement = judgement

		return nil
	}

	if len(*j) >= maxJudgements {
		return ierrors.WithMessagef(ErrTooManyJudgements, "%d judgements stored", len(*j))
	}

	*j = slices.Insert(*j, idx, JudgementEntry{ID: id, Judgement: judgement})

	return nil
}

// RetainSticky returns the sticky subset of the list in its original order.
func (j Judgements) RetainSticky() Judgements {
	return lo.Filter(j, func(entry JudgementEntry) bool {
		return entry.Judgement.IsSticky()
	})
}

// IsSorted checks that ids are strictly increasing.
func (j Judgements) IsSorted() bool {
	for i := 1; i < len(j); i++ {
		if j[i-1].ID >= j[i].ID {
			return false
		}
	}

	return true
}

func (j Judgements) Clone() Judgements {
	if j == nil {
		return nil
	}

	return slices.Clone(j)
}

func (j Judgements) Export(writer io.WriteSeeker) error {
	return stream.WriteCollection(writer, serializer.SeriLengthPrefixTypeAsUint16, func() (int, error) {
		for _, entry := range j {
			if err := stream.Write(writer, uint32(entry.ID)); err != nil {
				return 0, ierrors.Wrapf(err, "failed to write id of judgement %d", entry.ID)
			}
			if err := stream.Write(writer, uint8(entry.Judgement)); err != nil {
				return 0, ierrors.Wrapf(err, "failed to write judgement %d", entry.ID)
			}
		}

		return len(j), nil
	})
}

func JudgementsFromReader(reader io.ReadSeeker) (Judgements, error) {
	var judgements Judgements

	if err := stream.ReadCollection(reader, serializer.SeriLengthPrefixTypeAsUint16, func(i int) error {
		id, err := stream.Read[uint32](reader)
		if err != nil {
			return ierrors.Wrapf(err, "failed to read id of judgement at index %d", i)
		}

		rawJudgement, err := stream.Read[uint8](reader)
		if err != nil {
			return ierrors.Wrapf(err, "failed to read judgement at index %d", i)
		}

		judgement, err := JudgementFromByte(rawJudgement)
		if err != nil {
			return ierrors.Wrapf(err, "failed to decode judgement at index %d", i)
		}

		judgements = append(judgements, JudgementEntry{ID: JudgementID(id), Judgement: judgement})

		return nil
	}); err != nil {
		return nil, err
	}

	if !judgements.IsSorted() {
		return nil, ierrors.New("judgements are not strictly ordered by id")
	}

	return judgements, nil
}
