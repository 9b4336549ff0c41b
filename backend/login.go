package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"nftlend/wallet"
)

// LoginSignature is a signed-message pair proving control of an account.
// The backend treats it as a bearer credential valid for a few days; expiry
// is enforced server-side, the client never inspects it.
type LoginSignature struct {
	Message   string
	Signature string
}

// GenerateLoginSignature asks the signer to sign the canonical ownership
// message. One signature can be reused across calls for its validity window.
func GenerateLoginSignature(ctx context.Context, signer wallet.Signer) (LoginSignature, error) {
	message := fmt.Sprintf("Action: check_ownership ; Date: %s", time.Now().UTC().Format(time.RFC3339))
	sig, err := signer.SignMessage(ctx, []byte(message))
	if err != nil {
		return LoginSignature{}, fmt.Errorf("sign login message: %w", err)
	}
	return LoginSignature{
		Message:   message,
		Signature: hexutil.Encode(sig),
	}, nil
}
