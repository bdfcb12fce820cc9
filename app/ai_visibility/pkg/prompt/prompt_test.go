package prompt

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/api"
	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/model"
)

// stubRand 依次返回预设的下标
type stubRand struct {
	seq []int
	i   int
}

func (r *stubRand) IntN(n int) int {
	v := r.seq[r.i%len(r.seq)] % n
	r.i++
	return v
}

func TestClassify(t *testing.T) {
	tests := []struct {
		brand string
		want  model.BrandType
	}{
		{"Harvard University", model.BrandUniversity},
		{"Acme Bank", model.BrandFinancial},
		{"ACME FINANCE", model.BrandFinancial},
		{"City Hospital", model.BrandHealthcare},
		{"HealthPlus", model.BrandHealthcare},
		{"Joe's Cafe", model.BrandRestaurant},
		{"Seaside Resort", model.BrandHospitality},
		{"Stripe", model.BrandCompany},
		// 优先级：school 先于 bank
		{"Bank Street School", model.BrandUniversity},
		// 优先级：health 先于 food
		{"Health Food Co", model.BrandHealthcare},
	}
	for _, tt := range tests {
		if got := Classify(tt.brand); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.brand, got, tt.want)
		}
	}
}

func TestLocal_Generate_AcmeBank(t *testing.T) {
	for i := range Templates {
		g := NewLocal("2025", &stubRand{seq: []int{i}})
		got, err := g.Generate(context.Background(), []string{"CRM"}, "Acme Bank")
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("len = %d, want 1", len(got))
		}
		if !strings.Contains(got[0], "CRM financial institutions") {
			t.Errorf("prompt %q missing brand type", got[0])
		}
		want := Render(Templates[i], "CRM", model.BrandFinancial, "2025")
		if got[0] != want {
			t.Errorf("prompt = %q, want %q", got[0], want)
		}
	}
}

func TestLocal_Generate_OrderAndYear(t *testing.T) {
	g := NewLocal("2025", &stubRand{seq: []int{0, 1}})
	got, err := g.Generate(context.Background(), []string{"payments", "billing"}, "Stripe")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	want := []string{
		"What are the top payments companies in 2025?",
		"Best billing companies for enterprise businesses",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Generate() mismatch (-want +got):\n%s", diff)
	}
}

func TestLocal_Generate_DefaultRand(t *testing.T) {
	g := NewLocal("2025", nil)
	allowed := map[string]bool{}
	for _, tpl := range Templates {
		allowed[Render(tpl, "CRM", model.BrandCompany, "2025")] = true
	}
	for i := 0; i < 50; i++ {
		got, _ := g.Generate(context.Background(), []string{"CRM"}, "Acme")
		if !allowed[got[0]] {
			t.Fatalf("prompt %q is not one of the templates", got[0])
		}
	}
}

type mockService struct {
	api.Service
	req     *api.PromptsRequest
	prompts []string
	err     error
}

func (m *mockService) GeneratePrompts(_ context.Context, req *api.PromptsRequest) ([]string, error) {
	m.req = req
	return m.prompts, m.err
}

func TestRemote_Generate(t *testing.T) {
	svc := &mockService{prompts: []string{"p1"}}
	got, err := NewRemote(svc).Generate(context.Background(), []string{"CRM"}, "Acme")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if diff := cmp.Diff([]string{"p1"}, got); diff != "" {
		t.Errorf("Generate() mismatch (-want +got):\n%s", diff)
	}
	if svc.req.BrandName != "Acme" || len(svc.req.Keywords) != 1 {
		t.Errorf("request = %+v", svc.req)
	}
}
