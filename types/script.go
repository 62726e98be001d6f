package types

// Script references verification code by hash, together with the
// arguments it runs with. A cell carries one as its lock and optionally
// another as its type.
type Script struct {
	Args     []Bytes
	CodeHash Hash
	HashType ScriptHashType
}

type scriptWire struct {
	Args     []string `json:"args" validate:"required"`
	CodeHash *string  `json:"codeHash" validate:"required"`
	HashType *string  `json:"hashType" validate:"required"`
}

func decodeScript(data []byte) (Script, error) {
	var w scriptWire
	r := readWire("Script", data, &w)
	s := Script{
		Args:     r.bytesList("args", w.Args),
		CodeHash: r.hash("codeHash", w.CodeHash),
		HashType: r.scriptHashType("hashType", w.HashType),
	}
	if r.err != nil {
		return Script{}, r.err
	}
	return s, nil
}

func (s *Script) UnmarshalJSON(data []byte) error { return assign(s, decodeScript, data) }

func (s Script) MarshalJSON() ([]byte, error) {
	var w writer
	return finish(&w, scriptWire{
		Args:     hexBytesList(s.Args),
		CodeHash: hexHash(s.CodeHash),
		HashType: w.enum("Script", "hashType", s.HashType),
	})
}

// assign decodes data into *dst, leaving dst untouched on failure.
func assign[T any](dst *T, decode func([]byte) (T, error), data []byte) error {
	v, err := decode(data)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
