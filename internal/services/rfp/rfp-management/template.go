// internal/services/rfp/rfp-management/template.go
package rfpmanagement

const responseTemplate = `Dear Client,

Thank you for your interest in our media advertising solutions. We are pleased to present our comprehensive proposal for %s.

**Our Capabilities:**
- Premium audience targeting across tech-savvy millennials and Gen Z consumers
- Multi-platform reach including broadcast, digital, and social media
- Real-time campaign analytics and performance tracking
- Dedicated account management and support

**Proposed Solution:**
Based on your requirements, we recommend a multi-channel approach that combines our premium broadcast slots with targeted digital placements. Our audience data shows strong engagement rates in your target demographic, with 2.5M unique users actively engaging with technology content.

**Pricing & Timeline:**
We can accommodate your campaign timeline and budget requirements. Detailed pricing breakdown and media kit are attached for your review.

**Next Steps:**
We would be delighted to discuss this proposal in detail and answer any questions you may have. Please feel free to reach out to schedule a call.

Best regards,
Media Sales Team`
