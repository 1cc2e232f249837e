package sexpr

// Option configures a Deserializer/Serializer pair, following the
// stream.StreamOption / encode.EncodeOption shape: one
// function type per codec, closing over a private settings struct,
// rather than a generic options type shared across codecs (each codec
// in spec §4.3 "exposes its own Option type").
type Option func(*settings)

type settings struct {
	// listPrefixLength, when true (the default per §6), has the
	// encoder prefix every list with its decimal element count and a
	// separator byte; when false, lists are terminated by ')' instead.
	listPrefixLength bool
}

func defaultSettings() settings {
	return settings{listPrefixLength: true}
}

// WithListPrefixLength toggles the §6 default of prefixing lists with
// their element count. Disabling it makes the decoder rely solely on
// the closing ')' to find the end of a list (the UnknownSize list
// opener rather than KnownSize).
func WithListPrefixLength(v bool) Option {
	return func(s *settings) { s.listPrefixLength = v }
}

func apply(opts []Option) settings {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
