package mbconf

// ProtoVersion is the protocol version number reported by Meta (spec
// §4.5).
const ProtoVersion = 1

// Dispatcher answers a parsed Command against a Schema, delegating reads,
// writes, and actions to a Handler. It is the single-threaded cooperative
// request/response loop of spec §5: at most one command is in flight, and
// only the Handler calls below may block.
type Dispatcher struct {
	schema  *Schema
	handler Handler
}

// NewDispatcher pairs a schema with the handler that services it.
func NewDispatcher(schema *Schema, handler Handler) *Dispatcher {
	return &Dispatcher{schema: schema, handler: handler}
}

// Handle parses request and returns the 64-byte response frame. It never
// returns an error itself: every failure is encoded as an error response
// frame, per spec §7 ("errors are surfaced... never retried by the
// protocol layer").
func (d *Dispatcher) Handle(request [MessageLength]byte) [MessageLength]byte {
	cmd, err := ParseCommand(d.schema, request)
	if err != nil {
		return NewErrorFrame(KindOf(err)).AsBytes()
	}
	return d.dispatch(cmd).AsBytes()
}

func (d *Dispatcher) dispatch(cmd *Command) Frame {
	switch cmd.Tag {
	case CmdMeta:
		return d.handleMeta()
	case CmdQuery:
		return d.handleQuery(cmd)
	case CmdReadProp:
		return d.handleRead(d.schema.Prop(cmd.Index), func() (*FieldValue, error) {
			return d.handler.ReadProp(cmd.Index)
		})
	case CmdReadInfo:
		return d.handleRead(d.schema.Info(cmd.Index), func() (*FieldValue, error) {
			return d.handler.ReadInfo(cmd.Index)
		})
	case CmdWriteProp:
		return okOrErr(d.handler.WriteProp(cmd.Index, cmd.Value))
	case CmdWriteInfo:
		return okOrErr(d.handler.WriteInfo(cmd.Index, cmd.Value))
	case CmdAction:
		return okOrErr(d.handler.DoAction(cmd.Index))
	case CmdNoop:
		d.handler.Noop()
		return NewResponseFrame()
	default:
		return NewErrorFrame(ErrInvalidCommand)
	}
}

func (d *Dispatcher) handleMeta() Frame {
	f := NewResponseFrame()
	f.Push(ProtoVersion)
	f.Push(byte(d.schema.SectionCount()))
	f.Push(byte(d.schema.PropCount()))
	f.Push(byte(d.schema.InfoCount()))
	f.Push(byte(d.schema.ActionCount()))
	return f
}

func (d *Dispatcher) handleRead(desc *EntryDesc, read func() (*FieldValue, error)) Frame {
	value, err := read()
	if err != nil {
		return NewErrorFrame(KindOf(err))
	}
	bytes := value.IntoMessageBytes()
	f := NewFrame()
	f.Extend(bytes[:])
	return f
}

func okOrErr(err error) Frame {
	if err != nil {
		return NewErrorFrame(KindOf(err))
	}
	return NewResponseFrame()
}

func (d *Dispatcher) handleQuery(cmd *Command) Frame {
	desc := d.schema.Descriptor(cmd.EntryKind, cmd.EntryIndex)
	switch cmd.QueryTarget {
	case QueryField:
		return desc.EncodeDescriptor()
	case QueryHelp:
		if !desc.HasHelp {
			return NewErrorFrame(ErrNoContent)
		}
		f := NewResponseFrame()
		f.Extend([]byte(desc.Help))
		return f
	case QueryIcon:
		if !desc.HasIcon {
			return NewErrorFrame(ErrNoContent)
		}
		f := NewResponseFrame()
		f.Extend([]byte(desc.Icon))
		return f
	case QueryOption:
		if desc.Constraint.Tag != ConstraintValues || desc.Options == nil {
			return NewErrorFrame(ErrNotSupported)
		}
		label, ok := desc.Options.Get(cmd.OptionIndex)
		if !ok {
			return NewErrorFrame(ErrInvalidOption)
		}
		f := NewResponseFrame()
		f.Extend([]byte(label))
		return f
	case QueryLayout:
		f := NewResponseFrame()
		for _, ref := range d.schema.Layout(cmd.EntryIndex) {
			f.Push(byte(ref.Kind))
			f.Push(ref.Index)
		}
		return f
	default:
		return NewErrorFrame(ErrInvalidQuery)
	}
}
