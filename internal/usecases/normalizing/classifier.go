package normalizing

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
)

//go:embed signatures.yaml
var defaultSignatures []byte

var ErrNoSignatures = errors.New("nenhuma assinatura de erro configurada")

type Signature struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
	Code    string `yaml:"code"`

	re *regexp.Regexp
}

type signatureFile struct {
	Version    string      `yaml:"version"`
	Signatures []Signature `yaml:"signatures"`
}

// Classifier transforma textos de falha das integrações em registros de erro estruturados.
type Classifier struct {
	version    string
	signatures []Signature
}

// Candidate é um campo que não pôde ser lido como número.
type Candidate struct {
	Field string
	Value string
	Code  string
}

func LoadSignatures(data []byte) (*Classifier, error) {
	var file signatureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("erro ao ler assinaturas: %w", err)
	}

	if len(file.Signatures) == 0 {
		return nil, ErrNoSignatures
	}

	signatures := make([]Signature, 0, len(file.Signatures))
	for _, sig := range file.Signatures {
		re, err := regexp.Compile("(?i)" + sig.Pattern)
		if err != nil {
			return nil, fmt.Errorf("erro ao compilar assinatura %s: %w", sig.Name, err)
		}
		sig.re = re
		signatures = append(signatures, sig)
	}

	return &Classifier{version: file.Version, signatures: signatures}, nil
}

func LoadSignaturesFile(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir arquivo de assinaturas: %w", err)
	}
	return LoadSignatures(data)
}

// NewClassifier usa o arquivo informado ou, se vazio, as assinaturas embutidas.
func NewClassifier(path string) (*Classifier, error) {
	if path == "" {
		return LoadSignatures(defaultSignatures)
	}
	return LoadSignaturesFile(path)
}

func DefaultClassifier() *Classifier {
	c, err := LoadSignatures(defaultSignatures)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Classifier) Version() string {
	return c.version
}

func (c *Classifier) Match(value string) (Signature, bool) {
	for _, sig := range c.signatures {
		if sig.re.MatchString(value) {
			return sig, true
		}
	}
	return Signature{}, false
}

// Classify devolve nil quando nenhum candidato representa falha.
// Um código estruturado enviado pela integração tem precedência sobre o texto.
func (c *Classifier) Classify(candidates []Candidate) *domain.ErrorDetail {
	var records []domain.ErrorRecord

	for _, candidate := range candidates {
		if candidate.Code != "" {
			message := candidate.Value
			if message == "" {
				message = candidate.Code
			}
			records = append(records, domain.ErrorRecord{
				Field:    candidate.Field,
				Message:  message,
				RawValue: candidate.Value,
				Code:     candidate.Code,
			})
			continue
		}

		sig, ok := c.Match(candidate.Value)
		if !ok {
			continue
		}
		records = append(records, domain.ErrorRecord{
			Field:    candidate.Field,
			Message:  candidate.Value,
			RawValue: candidate.Value,
			Code:     sig.Code,
		})
	}

	if len(records) == 0 {
		return nil
	}

	return &domain.ErrorDetail{Errors: records, ErrorCount: len(records)}
}
