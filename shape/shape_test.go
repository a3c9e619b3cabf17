package shape

import (
	"testing"

	qerrors "github.com/FocuswithJustin/quill/errors"
)

type plan int

const (
	planFree plan = iota
	planPro
)

func (p plan) Ordinal() int { return int(p) }

func (p plan) VariantName() string {
	switch p {
	case planFree:
		return "free"
	case planPro:
		return "pro"
	default:
		return "unknown"
	}
}

func planFromOrdinal(i int) (Enum, error) {
	if i < 0 || i > int(planPro) {
		return nil, qerrors.Wrapf(qerrors.ErrMismatchedValue, "ordinal %d out of range for plan", i)
	}
	return plan(i), nil
}

func planFromName(name string) (Enum, error) {
	switch name {
	case "free":
		return planFree, nil
	case "pro":
		return planPro, nil
	default:
		return nil, qerrors.Wrapf(qerrors.ErrMismatchedValue, "unknown plan variant %q", name)
	}
}

func init() {
	RegisterEnum(planFree, EnumFactory{FromOrdinal: planFromOrdinal, FromName: planFromName})
}

type social struct {
	FB string `json:"fb"`
	YT string `json:"yt"`
}

type userModel struct {
	UUID CastIntoBlobBytes          `quill:"uuid"`
	Name CastIntoTextBytes          `quill:"name"`
	Age  int64                      `quill:"age"`
	Plan CastIntoInt[plan]          `quill:"plan"`
	Bio  Optional[CastIntoBlobBytes] `quill:"bio"`
	Tags CastIntoJSON[[]social]     `quill:"tags"`
}

type userView struct {
	Name string `quill:"-"`
	Age  int64  `quill:"age"`
	Plan AnyEnum[plan] `quill:"plan"`
	Tags AnyJSON[[]social] `quill:"tags"`
	Bio  Optional[[]byte] `quill:"bio"`
}

type userFilter struct {
	Age int64 `quill:"age"`
}

func TestAnalyzeModelShape(t *testing.T) {
	s, err := Analyze(userModel{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if err := ValidateModel(s); err != nil {
		t.Fatalf("ValidateModel: %v", err)
	}

	uuidField, ok := s.Field("uuid")
	if !ok {
		t.Fatal("expected uuid field")
	}
	if uuidField.Kind != KindCastIntoBlobBytes || uuidField.Optional {
		t.Errorf("uuid field misclassified: kind=%v optional=%v", uuidField.Kind, uuidField.Optional)
	}

	planField, ok := s.Field("plan")
	if !ok {
		t.Fatal("expected plan field")
	}
	if planField.Kind != KindCastIntoIntEnum {
		t.Errorf("plan field kind = %v, want KindCastIntoIntEnum", planField.Kind)
	}

	bioField, ok := s.Field("bio")
	if !ok || !bioField.Optional || bioField.Kind != KindCastIntoBlobBytes {
		t.Errorf("bio field misclassified: %+v ok=%v", bioField, ok)
	}

	tagsField, ok := s.Field("tags")
	if !ok || tagsField.Kind != KindCastIntoTextJSON {
		t.Errorf("tags field misclassified: %+v ok=%v", tagsField, ok)
	}
}

func TestAnalyzeIsCached(t *testing.T) {
	first, err := Analyze(userModel{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	second, err := Analyze(userModel{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if first != second {
		t.Error("expected Analyze to return the cached *Shape for a repeated type")
	}
}

func TestAnalyzeViewShape(t *testing.T) {
	s, err := Analyze(userView{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if err := ValidateView(s); err != nil {
		t.Fatalf("ValidateView: %v", err)
	}
	if _, ok := s.Field("name"); ok {
		t.Error("expected quill:\"-\" field to be excluded from the shape")
	}
	if len(s.Fields) != 4 {
		t.Errorf("expected 4 fields (age, plan, tags, bio; name excluded), got %d: %v", len(s.Fields), s.Labels())
	}
}

func TestAnalyzeFilterShape(t *testing.T) {
	s, err := Analyze(userFilter{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if err := ValidateFilter(s); err != nil {
		t.Fatalf("ValidateFilter: %v", err)
	}
}

type missingUUIDModel struct {
	Name CastIntoTextBytes `quill:"name"`
}

func TestValidateModelRequiresUUID(t *testing.T) {
	s, err := Analyze(missingUUIDModel{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if err := ValidateModel(s); !qerrors.Is(err, qerrors.ErrMismatchedConstraint) {
		t.Errorf("expected ErrMismatchedConstraint, got %v", err)
	}
}

type optionalUUIDModel struct {
	UUID Optional[CastIntoBlobBytes] `quill:"uuid"`
}

func TestValidateModelRejectsOptionalUUID(t *testing.T) {
	s, err := Analyze(optionalUUIDModel{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if err := ValidateModel(s); !qerrors.Is(err, qerrors.ErrMismatchedConstraint) {
		t.Errorf("expected ErrMismatchedConstraint, got %v", err)
	}
}

type duplicateLabelModel struct {
	A int64 `quill:"x"`
	B int64 `quill:"x"`
}

func TestAnalyzeRejectsDuplicateLabels(t *testing.T) {
	if _, err := Analyze(duplicateLabelModel{}); !qerrors.Is(err, qerrors.ErrInvalidNamingConvention) {
		t.Errorf("expected ErrInvalidNamingConvention, got %v", err)
	}
}

type castModelInFilter struct {
	UUID CastIntoBlobBytes `quill:"uuid"`
}

func TestValidateFilterRejectsCastInto(t *testing.T) {
	s, err := Analyze(castModelInFilter{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if err := ValidateFilter(s); !qerrors.Is(err, qerrors.ErrMismatchedType) {
		t.Errorf("expected ErrMismatchedType, got %v", err)
	}
}
