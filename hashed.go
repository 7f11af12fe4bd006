package anonym

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// HashAlgo represents a supported hashing algorithm.
type HashAlgo string

const (
	// HashSHA256 uses SHA-256 (deterministic, keeps joins between tables intact).
	HashSHA256 HashAlgo = "sha256"

	// HashSHA512 uses SHA-512 (deterministic).
	HashSHA512 HashAlgo = "sha512"

	// HashArgon2 uses Argon2id with a random salt.
	HashArgon2 HashAlgo = "argon2"

	// HashBcrypt uses bcrypt with a random salt.
	HashBcrypt HashAlgo = "bcrypt"
)

// Hasher performs one-way hashing.
type Hasher interface {
	// Hash returns the encoded digest of plaintext.
	Hash(plaintext []byte) (string, error)
}

// Argon2Params configures Argon2id hashing.
type Argon2Params struct {
	Time    uint32 // Number of iterations
	Memory  uint32 // Memory usage in KiB
	Threads uint8  // Parallelism factor
	KeyLen  uint32 // Output key length
	SaltLen uint32 // Salt length
}

// DefaultArgon2Params returns the parameters used by the argon2 hasher.
// Memory is kept low because every row of a column is hashed.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:    1,
		Memory:  16 * 1024,
		Threads: 2,
		KeyLen:  32,
		SaltLen: 16,
	}
}

type argon2Hasher struct {
	params Argon2Params
}

// Argon2 returns an Argon2id hasher.
func Argon2(params Argon2Params) Hasher {
	return &argon2Hasher{params: params}
}

func (h *argon2Hasher) Hash(plaintext []byte) (string, error) {
	salt := make([]byte, h.params.SaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	sum := argon2.IDKey(plaintext, salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)

	// $argon2id$v=19$m=16384,t=1,p=2$<salt>$<hash>
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Time,
		h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(sum),
	), nil
}

type bcryptHasher struct {
	cost int
}

// Bcrypt returns a bcrypt hasher. Inputs longer than 72 bytes fail.
func Bcrypt(cost int) Hasher {
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(plaintext []byte) (string, error) {
	sum, err := bcrypt.GenerateFromPassword(plaintext, h.cost)
	if err != nil {
		return "", err
	}
	return string(sum), nil
}

type sha256Hasher struct{}

func (sha256Hasher) Hash(plaintext []byte) (string, error) {
	sum := sha256.Sum256(plaintext)
	return hex.EncodeToString(sum[:]), nil
}

type sha512Hasher struct{}

func (sha512Hasher) Hash(plaintext []byte) (string, error) {
	sum := sha512.Sum512(plaintext)
	return hex.EncodeToString(sum[:]), nil
}

// HasherFor returns the builtin hasher for algo.
func HasherFor(algo HashAlgo) (Hasher, bool) {
	switch algo {
	case HashSHA256:
		return sha256Hasher{}, true
	case HashSHA512:
		return sha512Hasher{}, true
	case HashArgon2:
		return Argon2(DefaultArgon2Params()), true
	case HashBcrypt:
		return Bcrypt(bcrypt.MinCost), true
	default:
		return nil, false
	}
}

// IsValidHashAlgo returns true if the algorithm is a known hash algorithm.
func IsValidHashAlgo(algo HashAlgo) bool {
	_, ok := HasherFor(algo)
	return ok
}

// HashedOptions selects the hash algorithm. Algo defaults to sha256.
type HashedOptions struct {
	Algo HashAlgo `json:"algo" yaml:"algo" msgpack:"algo"`
}

// Hashed replaces string values with their digest.
//
// If hashing fails the value is redacted instead and SignalHashFailed is
// emitted; plaintext is never returned.
type Hashed struct {
	Target
	algo   HashAlgo
	hasher Hasher
}

// NewHashed returns a hashed transformer for a builtin algorithm.
func NewHashed(target Target, algo HashAlgo) (*Hashed, error) {
	h, ok := HasherFor(algo)
	if !ok {
		return nil, fmt.Errorf("%w: unknown hash algorithm %q", ErrInvalidOption, algo)
	}
	return &Hashed{Target: target, algo: algo, hasher: h}, nil
}

// NewHashedWith returns a hashed transformer using a custom hasher.
func NewHashedWith(target Target, algo HashAlgo, h Hasher) *Hashed {
	return &Hashed{Target: target, algo: algo, hasher: h}
}

// ID returns "hashed".
func (h *Hashed) ID() string { return string(TransformerHashed) }

// Description returns a short explanation with an example.
func (h *Hashed) Description() string {
	return "Replace your sensitive data with a digest (string only). [secret]->[2bb80d53...]"
}

// Algo returns the configured algorithm.
func (h *Hashed) Algo() HashAlgo { return h.algo }

// Transform hashes string values and passes every other kind through.
func (h *Hashed) Transform(value Column) Column {
	s, ok := stringValue(value)
	if !ok {
		return value
	}
	sum, err := h.hasher.Hash([]byte(s.Value))
	if err != nil {
		emitHashFailed(context.Background(), h.Target, h.algo, fmt.Errorf("%w: %w", ErrHash, err))
		return StringValue{Name: s.Name, Value: redactString(s.Value)}
	}
	return StringValue{Name: s.Name, Value: sum}
}

func newHashedFactory(target Target, options []byte, codec Codec) (Transformer, error) {
	opts := HashedOptions{Algo: HashSHA256}
	if len(options) > 0 {
		if err := codec.Unmarshal(options, &opts); err != nil {
			return nil, newCodecError(ErrUnmarshal, err)
		}
		if opts.Algo == "" {
			opts.Algo = HashSHA256
		}
	}
	return NewHashed(target, opts.Algo)
}
