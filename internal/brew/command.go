package brew

// CommandSpec is a fully-resolved invocation: executable path, ordered
// argument vector and environment overrides. It is built per call and
// never mutated afterwards. Arguments are passed to the OS verbatim —
// there is no shell in between, so no quoting or escaping applies.
type CommandSpec struct {
	Path string
	Args []string
	Env  map[string]string
}

// Command assembles a CommandSpec. Pure: no I/O, no interpretation of
// the arguments beyond copying them.
func Command(path string, args []string, extraEnv map[string]string) CommandSpec {
	spec := CommandSpec{
		Path: path,
		Args: append([]string(nil), args...),
	}
	if len(extraEnv) > 0 {
		spec.Env = make(map[string]string, len(extraEnv))
		for k, v := range extraEnv {
			spec.Env[k] = v
		}
	}
	return spec
}
