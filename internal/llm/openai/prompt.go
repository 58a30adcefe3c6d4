package openaiextractor

// extractionPrompt is the fixed system instruction. The model must
// answer with a JSON object carrying exactly the four record keys and
// the literal 'no info' for anything it cannot find.
const extractionPrompt = `Extract the following information from the provided text and structure your response in a JSON format with the specified keys. Ensure that you do not make assumptions or include incorrect information. If a specific type of information is completely missing from the text, please return only one 'no info' for that field.

- **VC Name**: Look for the name of the Venture Capital firm.
- **Contacts**: Search for any type of contact details available such as email addresses or phone numbers. Also include URLs that link directly to social media profiles or pages from 'http://linkedin.com', 'http://facebook.com', 'http://instagram.com', 'http://twitter.com'. List all found info, separating them by commas. Focus on URLs that provide direct communication channels (e.g., 'contact us', 'connect with us'), but avoid links related to job opportunities, personal profiles, or relationships.
- **Industries**: Identify and list the industries that the Venture Capital firm invests in. If not directly mentioned, infer based on the context of the text.
- **Investment Rounds**: Extract only the types of investment rounds the firm participates in or leads, such as Seed, Series A, Series B, etc. Do not include the names of companies involved in these rounds.

Use the following JSON keys for the response:
{
  "vc_name": "***",
  "contacts": "***",
  "industries": "***",
  "investment_rounds": "***"
}

Please format your response as a JSON object with these keys, filling in the appropriate information or 'no info' as required.`
