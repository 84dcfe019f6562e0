package commands

import (
	"context"
	"fmt"

	"pyxidust/internal/application"
	"pyxidust/internal/domain"
	"pyxidust/internal/ports"
)

// MintSerialResult contains the minted serials in order
type MintSerialResult struct {
	Serials []string
	Message string
}

// MintSerialCommand mints serials after an existing one, or from the
// counter when Existing is empty
type MintSerialCommand struct {
	observer
	counter  ports.SerialCounter
	Existing string
	Quantity int
}

// NewMintSerialCommand creates a new MintSerialCommand
func NewMintSerialCommand(counter ports.SerialCounter, existing string, quantity int) *MintSerialCommand {
	return &MintSerialCommand{
		counter:  counter,
		Existing: existing,
		Quantity: quantity,
	}
}

// Validate checks the seed serial before the counter is touched
func (c *MintSerialCommand) Validate() error {
	if c.Quantity < 1 || c.Quantity > domain.MaxCounter {
		return &application.ValidationError{
			Field:   "quantity",
			Message: fmt.Sprintf("quantity must be between 1 and %d", domain.MaxCounter),
		}
	}
	if c.Existing != "" {
		if err := domain.ValidateSerial(c.Existing); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs the mint command
func (c *MintSerialCommand) Execute(ctx context.Context) (*MintSerialResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	log := c.logger()
	serials, err := domain.NextSerials(c.Existing, c.Quantity, func() (string, error) {
		base, err := c.counter.NextBase(ctx)
		if err != nil {
			return "", err
		}
		log.Debug().Str("base", base).Msg("new base serial")
		return base, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to mint serial: %w", err)
	}

	c.recorder().RecordMinted(len(serials))
	log.Info().Strs("serials", serials).Msg("minted serials")

	msg := fmt.Sprintf("Minted %s", serials[0])
	if len(serials) > 1 {
		msg = fmt.Sprintf("Minted %d serials: %s .. %s", len(serials), serials[0], serials[len(serials)-1])
	}
	return &MintSerialResult{Serials: serials, Message: msg}, nil
}

// NextBaseResult contains a base serial fresh from the counter
type NextBaseResult struct {
	Base    string
	Message string
}

// NextBaseCommand takes the next base serial from the counter
type NextBaseCommand struct {
	observer
	counter ports.SerialCounter
}

// NewNextBaseCommand creates a new NextBaseCommand
func NewNextBaseCommand(counter ports.SerialCounter) *NextBaseCommand {
	return &NextBaseCommand{counter: counter}
}

// Execute runs the next base command
func (c *NextBaseCommand) Execute(ctx context.Context) (*NextBaseResult, error) {
	base, err := c.counter.NextBase(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read counter: %w", err)
	}
	if err := domain.CheckBase(base); err != nil {
		return nil, err
	}

	c.recorder().RecordMinted(1)
	c.logger().Info().Str("base", base).Msg("issued base serial")

	return &NextBaseResult{Base: base, Message: fmt.Sprintf("Issued %s", base)}, nil
}

// ValidateSerialResult describes a serial that passed validation
type ValidateSerialResult struct {
	Serial  domain.Serial
	Message string
}

// ValidateSerialCommand checks the shape of a serial. An invalid serial is
// reported as a *application.SerialError.
type ValidateSerialCommand struct {
	observer
	Serial string
}

// NewValidateSerialCommand creates a new ValidateSerialCommand
func NewValidateSerialCommand(serial string) *ValidateSerialCommand {
	return &ValidateSerialCommand{Serial: serial}
}

// Validate checks that a serial was given
func (c *ValidateSerialCommand) Validate() error {
	return application.ValidateRequired("serial", c.Serial)
}

// Execute runs the validation
func (c *ValidateSerialCommand) Execute(ctx context.Context) (*ValidateSerialResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := domain.ValidateSerial(c.Serial); err != nil {
		c.logger().Debug().Err(err).Str("serial", c.Serial).Msg("serial rejected")
		return nil, err
	}

	parsed, err := domain.ParseSerial(c.Serial)
	if err != nil {
		return nil, err
	}

	return &ValidateSerialResult{
		Serial:  parsed,
		Message: fmt.Sprintf("%s is valid", parsed),
	}, nil
}
