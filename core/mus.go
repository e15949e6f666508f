package core

// Hand-maintained MUS serializers for every persisted type. Kept in one
// place so the wire format is easy to audit; the field order below is the
// storage format and must not be reordered.

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// IDMUS serializes an ID as a varint-encoded uint64.
var IDMUS = idMUS{}

type idMUS struct{}

func (s idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	num, n, err := varint.Uint64.Unmarshal(bs)
	return ID(num), n, err
}

func (s idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

// timeMUS serializes a time.Time as its UnixMicro value.
type timeMUS struct{}

func (s timeMUS) Marshal(v time.Time, bs []byte) (n int) {
	return raw.Int64.Marshal(v.UnixMicro(), bs)
}

func (s timeMUS) Unmarshal(bs []byte) (v time.Time, n int, err error) {
	micro, n, err := raw.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(micro).UTC(), n, nil
}

func (s timeMUS) Size(v time.Time) (size int) {
	return raw.Int64.Size(v.UnixMicro())
}

func (s timeMUS) Skip(bs []byte) (n int, err error) {
	return raw.Int64.Skip(bs)
}

var (
	timeSer         = timeMUS{}
	float32SliceSer = ord.NewSliceSer[float32](raw.Float32)
	stringSliceSer  = ord.NewSliceSer[string](ord.String)
	sourceRefSer    = ord.NewSliceSer[SourceRef](SourceRefMUS)
)

// SourceRefMUS serializes a SourceRef.
var SourceRefMUS = sourceRefMUS{}

type sourceRefMUS struct{}

func (s sourceRefMUS) Marshal(v SourceRef, bs []byte) (n int) {
	n = ord.String.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Origin, bs[n:])
	n += ord.String.Marshal(v.Caption, bs[n:])
	return n
}

func (s sourceRefMUS) Unmarshal(bs []byte) (v SourceRef, n int, err error) {
	var n1 int
	v.Id, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Origin, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Caption, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s sourceRefMUS) Size(v SourceRef) (size int) {
	size = ord.String.Size(v.Id)
	size += ord.String.Size(v.Origin)
	size += ord.String.Size(v.Caption)
	return size
}

func (s sourceRefMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	for i := 0; i < 3; i++ {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

// DocumentMUS serializes a Document.
var DocumentMUS = documentMUS{}

type documentMUS struct{}

func (s documentMUS) Marshal(v Document, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.ContentHash, bs[n:])
	n += ord.String.Marshal(v.Filename, bs[n:])
	n += ord.String.Marshal(v.NormalizedName, bs[n:])
	n += ord.String.Marshal(v.Text, bs[n:])
	if v.DocDate != nil {
		n += ord.Bool.Marshal(true, bs[n:])
		n += timeSer.Marshal(*v.DocDate, bs[n:])
	} else {
		n += ord.Bool.Marshal(false, bs[n:])
	}
	n += ord.String.Marshal(v.Category, bs[n:])
	n += float32SliceSer.Marshal(v.Vector, bs[n:])
	n += varint.Int.Marshal(int(v.Status), bs[n:])
	n += sourceRefSer.Marshal(v.Sources, bs[n:])
	n += timeSer.Marshal(v.IngestedAt, bs[n:])
	n += timeSer.Marshal(v.UpdatedAt, bs[n:])
	return n
}

func (s documentMUS) Unmarshal(bs []byte) (v Document, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.ContentHash, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Filename, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.NormalizedName, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var hasDate bool
	hasDate, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if hasDate {
		var date time.Time
		date, n1, err = timeSer.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
		v.DocDate = &date
	}
	v.Category, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vector, n1, err = float32SliceSer.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var status int
	status, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Status = DocumentStatus(status)
	v.Sources, n1, err = sourceRefSer.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.IngestedAt, n1, err = timeSer.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = timeSer.Unmarshal(bs[n:])
	n += n1
	return
}

func (s documentMUS) Size(v Document) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.ContentHash)
	size += ord.String.Size(v.Filename)
	size += ord.String.Size(v.NormalizedName)
	size += ord.String.Size(v.Text)
	size += ord.Bool.Size(v.DocDate != nil)
	if v.DocDate != nil {
		size += timeSer.Size(*v.DocDate)
	}
	size += ord.String.Size(v.Category)
	size += float32SliceSer.Size(v.Vector)
	size += varint.Int.Size(int(v.Status))
	size += sourceRefSer.Size(v.Sources)
	size += timeSer.Size(v.IngestedAt)
	size += timeSer.Size(v.UpdatedAt)
	return size
}

func (s documentMUS) Skip(bs []byte) (n int, err error) {
	v, n, err := s.Unmarshal(bs)
	_ = v
	return n, err
}

// DuplicateEdgeMUS serializes a DuplicateEdge.
var DuplicateEdgeMUS = duplicateEdgeMUS{}

type duplicateEdgeMUS struct{}

func (s duplicateEdgeMUS) Marshal(v DuplicateEdge, bs []byte) (n int) {
	n = IDMUS.Marshal(v.CandidateId, bs)
	n += IDMUS.Marshal(v.MatchedId, bs[n:])
	n += varint.Int.Marshal(int(v.Tier), bs[n:])
	n += raw.Float32.Marshal(v.Similarity, bs[n:])
	n += varint.Int.Marshal(int(v.Decision), bs[n:])
	n += timeSer.Marshal(v.RecordedAt, bs[n:])
	return n
}

func (s duplicateEdgeMUS) Unmarshal(bs []byte) (v DuplicateEdge, n int, err error) {
	var n1 int
	v.CandidateId, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.MatchedId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var tier int
	tier, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Tier = Tier(tier)
	v.Similarity, n1, err = raw.Float32.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var decision int
	decision, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Decision = MatchDecision(decision)
	v.RecordedAt, n1, err = timeSer.Unmarshal(bs[n:])
	n += n1
	return
}

func (s duplicateEdgeMUS) Size(v DuplicateEdge) (size int) {
	size = IDMUS.Size(v.CandidateId)
	size += IDMUS.Size(v.MatchedId)
	size += varint.Int.Size(int(v.Tier))
	size += raw.Float32.Size(v.Similarity)
	size += varint.Int.Size(int(v.Decision))
	size += timeSer.Size(v.RecordedAt)
	return size
}

func (s duplicateEdgeMUS) Skip(bs []byte) (n int, err error) {
	v, n, err := s.Unmarshal(bs)
	_ = v
	return n, err
}

// ScoreRecordMUS serializes a ScoreRecord.
var ScoreRecordMUS = scoreRecordMUS{}

type scoreRecordMUS struct{}

func (s scoreRecordMUS) Marshal(v ScoreRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(v.DocumentId, bs)
	n += varint.Int.Marshal(v.Micro, bs[n:])
	n += varint.Int.Marshal(v.Macro, bs[n:])
	n += varint.Int.Marshal(v.Legal, bs[n:])
	n += varint.Int.Marshal(v.Relevancy, bs[n:])
	n += timeSer.Marshal(v.ComputedAt, bs[n:])
	return n
}

func (s scoreRecordMUS) Unmarshal(bs []byte) (v ScoreRecord, n int, err error) {
	var n1 int
	v.DocumentId, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	for _, dst := range []*int{&v.Micro, &v.Macro, &v.Legal, &v.Relevancy} {
		*dst, n1, err = varint.Int.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	v.ComputedAt, n1, err = timeSer.Unmarshal(bs[n:])
	n += n1
	return
}

func (s scoreRecordMUS) Size(v ScoreRecord) (size int) {
	size = IDMUS.Size(v.DocumentId)
	size += varint.Int.Size(v.Micro)
	size += varint.Int.Size(v.Macro)
	size += varint.Int.Size(v.Legal)
	size += varint.Int.Size(v.Relevancy)
	size += timeSer.Size(v.ComputedAt)
	return size
}

func (s scoreRecordMUS) Skip(bs []byte) (n int, err error) {
	v, n, err := s.Unmarshal(bs)
	_ = v
	return n, err
}

// ClaimDefinitionMUS serializes a ClaimDefinition.
var ClaimDefinitionMUS = claimDefinitionMUS{}

type claimDefinitionMUS struct{}

func (s claimDefinitionMUS) Marshal(v ClaimDefinition, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Text, bs[n:])
	n += ord.String.Marshal(v.ClaimType, bs[n:])
	n += timeSer.Marshal(v.DateFrom, bs[n:])
	n += timeSer.Marshal(v.DateTo, bs[n:])
	n += stringSliceSer.Marshal(v.Keywords, bs[n:])
	n += ord.String.Marshal(v.ExpectedEvidenceType, bs[n:])
	n += varint.Int.Marshal(v.Weight, bs[n:])
	n += timeSer.Marshal(v.InsertedAt, bs[n:])
	return n
}

func (s claimDefinitionMUS) Unmarshal(bs []byte) (v ClaimDefinition, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ClaimType, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.DateFrom, n1, err = timeSer.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.DateTo, n1, err = timeSer.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Keywords, n1, err = stringSliceSer.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ExpectedEvidenceType, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Weight, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = timeSer.Unmarshal(bs[n:])
	n += n1
	return
}

func (s claimDefinitionMUS) Size(v ClaimDefinition) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Text)
	size += ord.String.Size(v.ClaimType)
	size += timeSer.Size(v.DateFrom)
	size += timeSer.Size(v.DateTo)
	size += stringSliceSer.Size(v.Keywords)
	size += ord.String.Size(v.ExpectedEvidenceType)
	size += varint.Int.Size(v.Weight)
	size += timeSer.Size(v.InsertedAt)
	return size
}

func (s claimDefinitionMUS) Skip(bs []byte) (n int, err error) {
	v, n, err := s.Unmarshal(bs)
	_ = v
	return n, err
}

// CorrelationRecordMUS serializes a CorrelationRecord.
var CorrelationRecordMUS = correlationRecordMUS{}

type correlationRecordMUS struct{}

func (s correlationRecordMUS) Marshal(v CorrelationRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(v.DocumentId, bs)
	n += IDMUS.Marshal(v.ClaimId, bs[n:])
	n += varint.Int.Marshal(v.ContradictionScore, bs[n:])
	n += varint.Int.Marshal(v.KeywordMatches, bs[n:])
	n += varint.Int.Marshal(v.DateRelevance, bs[n:])
	n += varint.Int.Marshal(v.TypeMatchBonus, bs[n:])
	n += timeSer.Marshal(v.RecordedAt, bs[n:])
	return n
}

func (s correlationRecordMUS) Unmarshal(bs []byte) (v CorrelationRecord, n int, err error) {
	var n1 int
	v.DocumentId, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.ClaimId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	for _, dst := range []*int{&v.ContradictionScore, &v.KeywordMatches, &v.DateRelevance, &v.TypeMatchBonus} {
		*dst, n1, err = varint.Int.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	v.RecordedAt, n1, err = timeSer.Unmarshal(bs[n:])
	n += n1
	return
}

func (s correlationRecordMUS) Size(v CorrelationRecord) (size int) {
	size = IDMUS.Size(v.DocumentId)
	size += IDMUS.Size(v.ClaimId)
	size += varint.Int.Size(v.ContradictionScore)
	size += varint.Int.Size(v.KeywordMatches)
	size += varint.Int.Size(v.DateRelevance)
	size += varint.Int.Size(v.TypeMatchBonus)
	size += timeSer.Size(v.RecordedAt)
	return size
}

func (s correlationRecordMUS) Skip(bs []byte) (n int, err error) {
	v, n, err := s.Unmarshal(bs)
	_ = v
	return n, err
}
