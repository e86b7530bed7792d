package enumerators

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	elb "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/de-tools/apn-tagger/pkg/models/domain"
	"github.com/de-tools/apn-tagger/pkg/services/tagging"
)

// lbEnumerator covers both load balancer generations: ALB/NLB through
// elbv2 (tagged by ARN) and classic load balancers (tagged by name, the
// generic tagging API does not accept them).
type lbEnumerator struct {
	v2      elbv2.DescribeLoadBalancersAPIClient
	classic elb.DescribeLoadBalancersAPIClient
}

func NewLoadBalancers(cfg awssdk.Config) *lbEnumerator {
	return &lbEnumerator{
		v2:      elbv2.NewFromConfig(cfg),
		classic: elb.NewFromConfig(cfg),
	}
}

func (e *lbEnumerator) Service() string {
	return "elb"
}

func (e *lbEnumerator) Enumerate(ctx context.Context) (tagging.Enumeration, error) {
	var enum tagging.Enumeration

	if err := e.modern(ctx, &enum); err != nil {
		enum.Failures = append(enum.Failures, fmt.Sprintf("describe load balancers: %v", err))
	}
	if err := e.legacy(ctx, &enum); err != nil {
		enum.Failures = append(enum.Failures, fmt.Sprintf("describe classic load balancers: %v", err))
	}

	return enum, nil
}

func (e *lbEnumerator) modern(ctx context.Context, enum *tagging.Enumeration) error {
	p := elbv2.NewDescribeLoadBalancersPaginator(e.v2, &elbv2.DescribeLoadBalancersInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, lb := range page.LoadBalancers {
			enum.Refs = append(enum.Refs, domain.ResourceRef{
				Kind: domain.KindLoadBalancer,
				ARN:  awssdk.ToString(lb.LoadBalancerArn),
				Name: awssdk.ToString(lb.LoadBalancerName),
			})
		}
	}
	return nil
}

func (e *lbEnumerator) legacy(ctx context.Context, enum *tagging.Enumeration) error {
	p := elb.NewDescribeLoadBalancersPaginator(e.classic, &elb.DescribeLoadBalancersInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, lb := range page.LoadBalancerDescriptions {
			name := awssdk.ToString(lb.LoadBalancerName)
			enum.Refs = append(enum.Refs, domain.ResourceRef{
				Kind: domain.KindClassicLB,
				ID:   name,
				Name: name,
			})
		}
	}
	return nil
}
